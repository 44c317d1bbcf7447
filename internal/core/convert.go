package core

// convert.go provides the sentinel and format parsers for raw CSV cells.
//
// These functions handle the messy reality of the exported listing data:
//   - "????" placeholder meaning "value intentionally absent"
//   - prices with thousand separators, currency words, and symbols
//   - several date layouts, with and without a time component
//   - room counts embedded in free text ("3 rooms + maid")
//
// All parsers return pgtype values with Valid=false for empty, placeholder,
// or malformed input. Parsing never fails hard: garbage degrades to absent.

import (
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Placeholder is the literal sentinel the source exports use for an
// intentionally missing value. It is distinct from an empty cell but both
// parse to absent.
const Placeholder = "????"

var (
	priceStripRegex = regexp.MustCompile(`[^\d.]`)
	digitRunRegex   = regexp.MustCompile(`\d+`)
)

// dateLayouts is tried in order; the first successful parse wins.
var dateLayouts = []string{
	"02-01-2006 15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2006-01-02",
}

// usdThreshold is the business heuristic from the legacy importer: a total
// below this magnitude is assumed to be dollar-denominated.
const usdThreshold = 1_000_000

// Currency codes resolved by DetectCurrency.
const (
	CurrencyEGP = "EGP"
	CurrencyUSD = "USD"
)

// absent reports whether a raw cell carries no value at all.
func absent(s string) bool {
	return s == "" || s == Placeholder
}

// ParsePrice parses a price cell into a numeric value. Everything except
// digits and the decimal point is stripped first, so "1,200,000 EGP" and
// "$85000" both parse. Empty after stripping, the placeholder, and
// unparseable leftovers all yield absent.
func ParsePrice(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if absent(s) {
		return pgtype.Numeric{Valid: false}
	}

	s = priceStripRegex.ReplaceAllString(s, "")
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// DetectCurrency returns the currency code for a price cell. A dollar
// marker in the raw text (the word "dollar", the "$" symbol, or "USD") wins
// outright; otherwise a parsed total below the threshold is assumed USD.
// Everything else, including absent input, is the local EGP.
func DetectCurrency(raw string, total pgtype.Numeric) string {
	raw = strings.TrimSpace(raw)
	if absent(raw) {
		return CurrencyEGP
	}

	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "DOLLAR") || strings.Contains(upper, "$") || strings.Contains(upper, "USD") {
		return CurrencyUSD
	}

	if total.Valid {
		if f, err := total.Float64Value(); err == nil && f.Valid && f.Float64 < usdThreshold {
			return CurrencyUSD
		}
	}
	return CurrencyEGP
}

// ParseDate parses a date cell against the known layouts in order. Failure
// yields absent; the record assembly layer substitutes "now", not the
// parser.
func ParseDate(s string) pgtype.Timestamp {
	s = strings.TrimSpace(s)
	if absent(s) {
		return pgtype.Timestamp{Valid: false}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Timestamp{Time: t, Valid: true}
		}
	}
	return pgtype.Timestamp{Valid: false}
}

// ParseCount extracts the first contiguous digit run anywhere in the text
// and parses it as an integer count. "3 rooms" parses to 3; no digits means
// absent.
func ParseCount(s string) pgtype.Int4 {
	s = strings.TrimSpace(s)
	if absent(s) {
		return pgtype.Int4{Valid: false}
	}

	match := digitRunRegex.FindString(s)
	if match == "" {
		return pgtype.Int4{Valid: false}
	}

	var n pgtype.Int4
	if err := n.Scan(match); err != nil {
		return pgtype.Int4{Valid: false}
	}
	return n
}

// Truncate returns at most max runes of s. Truncation is silent and
// rune-safe so Arabic text is never cut mid-character.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// MakeHeaderIndex builds a HeaderIndex from the CSV header row. Names are
// matched exactly; only surrounding whitespace and a UTF-8 BOM are removed.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// Cell retrieves a trimmed cell value by column name, with the placeholder
// collapsed to the empty string. Missing columns read as empty.
func Cell(row []string, idx HeaderIndex, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[pos])
	if v == Placeholder {
		return ""
	}
	return v
}

// RawCell is Cell without placeholder collapsing, for parsers that need to
// distinguish the sentinel themselves.
func RawCell(row []string, idx HeaderIndex, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}
