package core

// vocab.go maps free-text categorical values to persisted lookup-table
// identifiers. Resolution is two-stage: a static table from the exact
// spelling found in the exports (bilingual, punctuation variants and all)
// to a stable vocabulary code, then a per-run table from code to database
// identifier. A miss at either stage resolves to absent; importing a row
// never creates vocabulary entries.

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// StatusSeparator joins combined status values in the exports, e.g.
// "For Rent |##| Sold Out". Only the first segment counts.
const StatusSeparator = "|##|"

// Vocabulary codes the normalizer routes prices on.
const (
	CodeForSale = "FOR_SALE"
	CodeForRent = "FOR_RENT"
)

// typeCodes maps the exact type spellings found in the exports to
// vocabulary codes. The variants are real: inconsistent casing, stray
// punctuation ("Town House . M"), misspellings ("BESMENT", "FARMACY"),
// and Arabic names.
var typeCodes = map[string]string{
	"Stand alone Compound":    "STANDALONE_COMPOUND",
	"APARTMENT COMPOUND":      "APARTMENT_COMPOUND",
	"APARTMENT OUT":           "APARTMENT_OUT",
	"ViLLA OUT":               "VILLA_OUT",
	"Town House":              "TOWNHOUSE",
	"Town House CORNER":       "TOWNHOUSE_CORNER",
	"Town House . M":          "TOWNHOUSE",
	"Twin House":              "TWIN_HOUSE",
	"DUPLEX G+B":              "DUPLEX_GB",
	"DUPLEX G+F":              "DUPLEX_GF",
	"DUPLEX ROOF":             "DUPLEX_ROOF",
	"ROOF":                    "ROOF",
	"STUDIO":                  "STUDIO",
	"OFFICE SPACE":            "OFFICE_SPACE",
	"CLINIC":                  "CLINIC",
	"ADMIN BUILDING":          "ADMIN_BUILDING",
	"ADMIN & RETAIL BUILDING": "ADMIN_RETAIL_BUILDING",
	"RETAIL":                  "RETAIL",
	"RETAIL BUILDING":         "RETAIL_BUILDING",
	"BESMENT":                 "BASEMENT",
	"FACTORY":                 "FACTORY",
	"FARMACY":                 "PHARMACY",
	"شاليه":                   "CHALET",
	"I VILLA G":               "I_VILLA_G",
	"I VILLA R":               "I_VILLA_R",
	"اراضي":                   "LAND",
	"بنزينه":                  "GAS_STATION",
	"عماره":                   "BUILDING",
	"مستشفيات":                "HOSPITAL",
}

// statusCodes maps status spellings to vocabulary codes. "Naw" is how the
// exports spell "now".
var statusCodes = map[string]string{
	"For sale":   CodeForSale,
	"For Sale":   CodeForSale,
	"For Rent":   CodeForRent,
	"Sold Out":   "SOLD_OUT",
	"Naw rented": "NOW_RENTED",
	"Hold Naw":   "HOLD",
	"HOLD NOW":   "HOLD",
	"Recycle":    "RECYCLE",
	"غير معروف":  "UNKNOWN",
}

// finishingCodes maps finishing-state spellings to vocabulary codes.
var finishingCodes = map[string]string{
	"FULLY FINISHED":             "FULLY_FINISHED",
	"SEMI FINISHED":              "SEMI_FINISHED",
	"fully finished & furnished": "FULLY_FURNISHED",
	"Skeleton هيكل خرساني":       "SKELETON",
	"SEMI FURNITURE":             "SEMI_FURNITURE",
}

// Mappings holds the per-run vocabulary-code to identifier tables, loaded
// once from the lookup collaborator before any row is processed and
// read-only for the life of the run.
type Mappings struct {
	Categories map[string]string // NAME (uppercased) -> id
	Types      map[string]string // CODE -> id
	Statuses   map[string]string // CODE -> id
	Finishing  map[string]string // CODE -> id
	Regions    map[string]string // name or display alias (case-sensitive) -> id
	Currencies map[string]string // ISO code -> id
}

// codeKey normalizes a lookup-table display name into its vocabulary code:
// uppercased, spaces joined with underscores.
func codeKey(name string) string {
	return strings.ReplaceAll(strings.ToUpper(name), " ", "_")
}

// LoadMappings reads all six vocabulary tables scoped to the company and
// builds the run-time resolution tables. Any read failure is fatal to the
// run: no rows may be processed against partial mappings.
func LoadMappings(ctx context.Context, src LookupSource, companyID string) (*Mappings, error) {
	m := &Mappings{
		Categories: make(map[string]string),
		Types:      make(map[string]string),
		Statuses:   make(map[string]string),
		Finishing:  make(map[string]string),
		Regions:    make(map[string]string),
		Currencies: make(map[string]string),
	}

	categories, err := src.Categories(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	for _, e := range categories {
		m.Categories[strings.ToUpper(e.Name)] = e.ID
	}

	types, err := src.Types(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load types: %w", err)
	}
	for _, e := range types {
		m.Types[codeKey(e.Name)] = e.ID
	}

	statuses, err := src.Statuses(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load statuses: %w", err)
	}
	for _, e := range statuses {
		m.Statuses[codeKey(e.Name)] = e.ID
	}

	finishing, err := src.Finishing(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load finishing statuses: %w", err)
	}
	for _, e := range finishing {
		m.Finishing[codeKey(e.Name)] = e.ID
	}

	regions, err := src.Regions(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}
	for _, e := range regions {
		m.Regions[e.Name] = e.ID
		if e.DisplayName.Valid {
			m.Regions[e.DisplayName.String] = e.ID
		}
	}

	currencies, err := src.Currencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load currencies: %w", err)
	}
	for _, e := range currencies {
		m.Currencies[e.Code] = e.ID
	}

	return m, nil
}

// MapType resolves a free-text property type to its identifier.
func (m *Mappings) MapType(s string) pgtype.Text {
	return resolve(typeCodes, m.Types, s)
}

// MapStatus resolves a free-text unit status to its identifier. Combined
// statuses are cut at the first separator; the remainder is discarded.
func (m *Mappings) MapStatus(s string) pgtype.Text {
	if i := strings.Index(s, StatusSeparator); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return resolve(statusCodes, m.Statuses, s)
}

// MapFinishing resolves a free-text finishing state to its identifier.
func (m *Mappings) MapFinishing(s string) pgtype.Text {
	return resolve(finishingCodes, m.Finishing, s)
}

// MapRegion resolves an area name to its region identifier. The lookup is
// single-stage and case-sensitive, keyed by canonical name or display
// alias.
func (m *Mappings) MapRegion(s string) pgtype.Text {
	if absent(s) {
		return pgtype.Text{Valid: false}
	}
	return lookupID(m.Regions, s)
}

// MapCurrency resolves a currency code (from DetectCurrency) to its
// identifier, absent if the code was not preloaded.
func (m *Mappings) MapCurrency(code string) pgtype.Text {
	return lookupID(m.Currencies, code)
}

// StatusIDFor returns the identifier loaded for a vocabulary code, or
// absent. The normalizer uses it to route prices on FOR_SALE / FOR_RENT.
func (m *Mappings) StatusIDFor(code string) pgtype.Text {
	return lookupID(m.Statuses, code)
}

// resolve performs the two-stage lookup: exact free-text variant to
// vocabulary code, then code to loaded identifier.
func resolve(codes map[string]string, ids map[string]string, s string) pgtype.Text {
	if absent(s) {
		return pgtype.Text{Valid: false}
	}
	code, ok := codes[s]
	if !ok {
		return pgtype.Text{Valid: false}
	}
	return lookupID(ids, code)
}

func lookupID(ids map[string]string, key string) pgtype.Text {
	id, ok := ids[key]
	if !ok {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: id, Valid: true}
}
