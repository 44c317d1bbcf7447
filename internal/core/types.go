package core

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Source CSV column names. Headers are matched exactly as they appear in the
// files, including the Arabic-origin spacing quirks, so no case folding is
// applied.
const (
	ColPropertyNumber = "Property Number"
	ColType           = "Type"
	ColUnitFor        = "Unit For"
	ColFinished       = "Finished"
	ColArea           = "Area"
	ColTotalPrice     = "Total Price"
	ColLandArea       = "Land area"
	ColSpace          = "SPACE"
	ColRooms          = "ROOMS"
	ColCreatedTime    = "Created Time"
	ColModifiedTime   = "Modified Time"
	ColPropertyName   = "Property Name - Compound Name"
	ColDescription    = "Description"
	ColBuilding       = "Building"
	ColBuildingName   = "BUILDING NAME"
	ColUnitNo         = "Unit NO"
	ColFloors         = "The Floors"
)

// Maximum lengths for truncated text fields.
const (
	MaxPropertyName = 500
	MaxDescription  = 2000
	MaxBuildingName = 255
	MaxUnitNumber   = 50
	MaxFloorNumber  = 100
)

// HeaderIndex maps column names to their position in a CSV row.
type HeaderIndex map[string]int

// RunContext carries the tenant and acting-user identity for a single
// import run. It is fixed before the pipeline starts.
type RunContext struct {
	CompanyID string
	UserID    string
}

// PropertyParams is the fully normalized output of one accepted row.
// Every field is either a concrete typed value or explicitly absent
// (Valid=false); nothing is mutated after BuildProperty returns it.
type PropertyParams struct {
	CompanyID      string
	CreatedByID    string
	PropertyNumber string

	TypeID            pgtype.Text
	StatusID          pgtype.Text
	FinishingStatusID pgtype.Text
	RegionID          pgtype.Text
	CurrencyID        pgtype.Text

	PropertyName string
	Title        string
	Description  string
	BuildingName string
	UnitNumber   string
	FloorNumber  string

	LandArea           pgtype.Numeric
	TotalArea          pgtype.Numeric
	RoomsCount         pgtype.Int4
	BedroomsCount      pgtype.Int4
	SalePrice          pgtype.Numeric
	RentalPriceMonthly pgtype.Numeric

	CreatedAt pgtype.Timestamp
	UpdatedAt pgtype.Timestamp
}

// LookupEntry is one controlled-vocabulary row: a persisted identifier and
// its display name.
type LookupEntry struct {
	ID   string
	Name string
}

// RegionEntry is a region lookup row. DisplayName is an optional alias; when
// valid it resolves to the same identifier as Name.
type RegionEntry struct {
	ID          string
	Name        string
	DisplayName pgtype.Text
}

// CurrencyEntry is a currency lookup row keyed by ISO code.
type CurrencyEntry struct {
	ID   string
	Code string
}

// LookupSource reads the controlled-vocabulary tables scoped to a company.
// It is consulted once at run start; the pipeline never writes to it.
type LookupSource interface {
	Categories(ctx context.Context, companyID string) ([]LookupEntry, error)
	Types(ctx context.Context, companyID string) ([]LookupEntry, error)
	Statuses(ctx context.Context, companyID string) ([]LookupEntry, error)
	Finishing(ctx context.Context, companyID string) ([]LookupEntry, error)
	Regions(ctx context.Context, companyID string) ([]RegionEntry, error)
	Currencies(ctx context.Context) ([]CurrencyEntry, error)
}

// PropertyWriter persists normalized records. Insert failures are per-row
// and recoverable; Flush makes all prior inserts durable.
type PropertyWriter interface {
	Insert(ctx context.Context, p PropertyParams) error
	Flush(ctx context.Context) error
}

// RunResult holds the observable counters for one import run. The counters
// never influence control flow.
type RunResult struct {
	Processed  int // rows read across all sources
	Imported   int // rows successfully handed to the writer
	Skipped    int // missing key, duplicate, or insert failure
	UniqueKeys int // distinct property numbers seen
}
