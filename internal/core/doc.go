// Package core provides the business logic for the property CSV import run.
//
// This package is the heart of the importer, containing all normalization
// and mapping logic independent of any database driver or CLI layer. It can
// be exercised by cmd/importer or by tests without modification.
//
// # Pipeline
//
// Data flows one way through four stages:
//
//  1. Format parsers ([ParsePrice], [ParseDate], [ParseCount],
//     [DetectCurrency]) turn a raw cell into a typed pgtype value or an
//     explicit absent value (Valid=false). Malformed input degrades to
//     absent; parsers never fail.
//  2. The vocabulary mapper ([Mappings]) resolves free-text categorical
//     values to vocabulary codes and then to persisted identifiers loaded
//     once per run from a [LookupSource].
//  3. [BuildProperty] assembles one [PropertyParams] per row, applying
//     field truncation, area/building fallbacks, and sale-vs-rental price
//     routing based on the resolved status.
//  4. The [Importer] sequences source files, enforces first-seen-wins
//     dedup on the property number across the whole run, and hands accepted
//     records to a [PropertyWriter], flushing every 100 inserts and at the
//     end of each source.
//
// # Absence
//
// Source files use the literal "????" placeholder for intentionally missing
// values; both the placeholder and the empty string map to pgtype values
// with Valid=false, which the store writes as NULL. An unmappable free-text
// category resolves to absent, never to an error and never to a new
// vocabulary entry.
package core
