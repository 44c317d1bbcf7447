package core

// importer.go sequences the configured source files through the pipeline.
// Processing is strictly sequential: one row is fully read, normalized, and
// persisted (or skipped) before the next is examined. First-seen-wins dedup
// on the property number depends on that stable ordering.

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FlushInterval is how many successful inserts go between durability
// flushes. Each source also flushes unconditionally when it completes.
const FlushInterval = 100

// Importer drives one import run. The seen-key set is owned by the
// instance, so repeated runs never leak dedup state into each other.
type Importer struct {
	writer   PropertyWriter
	mappings *Mappings
	run      RunContext
	log      *slog.Logger

	seen map[string]struct{}
}

// NewImporter builds a run-scoped importer. The mappings must already be
// loaded; the writer must be ready to accept inserts.
func NewImporter(writer PropertyWriter, mappings *Mappings, run RunContext, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		writer:   writer,
		mappings: mappings,
		run:      run,
		log:      log,
		seen:     make(map[string]struct{}),
	}
}

// Run processes the sources in declared order and returns the run
// counters. A missing source file is logged and skipped; a failing row is
// counted and skipped. Only a malformed-beyond-reading source or a failed
// final flush surfaces as an error, and even then the counters accumulated
// so far are returned.
func (imp *Importer) Run(ctx context.Context, sources []string) (RunResult, error) {
	var res RunResult

	for _, path := range sources {
		if err := imp.importSource(ctx, path, &res); err != nil {
			return res, fmt.Errorf("import %s: %w", filepath.Base(path), err)
		}
	}

	res.UniqueKeys = len(imp.seen)
	imp.log.Info("import run complete",
		"processed", res.Processed,
		"imported", res.Imported,
		"skipped", res.Skipped,
		"unique_keys", res.UniqueKeys,
	)
	return res, nil
}

// importSource streams one CSV file through the pipeline. The first record
// is the header; every following record is one candidate property.
func (imp *Importer) importSource(ctx context.Context, path string, res *RunResult) error {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		// A declared-but-absent source contributes zero rows and never
		// halts the run.
		imp.log.Warn("source file not found, skipping", "file", name, "error", err)
		return nil
	}
	defer f.Close()

	imp.log.Info("processing source", "file", name)

	r := csv.NewReader(NewSourceReader(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			imp.log.Warn("source file empty", "file", name)
			return imp.writer.Flush(ctx)
		}
		return fmt.Errorf("read header: %w", err)
	}
	idx := MakeHeaderIndex(header)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A single unreadable record is a row-level failure, not a
			// source-level one.
			res.Processed++
			res.Skipped++
			imp.log.Warn("unreadable record", "file", name, "error", err)
			continue
		}

		res.Processed++

		number := Cell(row, idx, ColPropertyNumber)
		if number == "" {
			res.Skipped++
			continue
		}
		if _, dup := imp.seen[number]; dup {
			res.Skipped++
			continue
		}
		imp.seen[number] = struct{}{}

		params := BuildProperty(row, idx, imp.mappings, imp.run, time.Now())
		if err := imp.writer.Insert(ctx, params); err != nil {
			res.Skipped++
			imp.log.Warn("insert failed", "file", name, "property_number", number, "error", err)
			continue
		}

		res.Imported++
		// Cadence counts successful writes across the whole run, not per
		// source.
		if res.Imported%FlushInterval == 0 {
			if err := imp.writer.Flush(ctx); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
			imp.log.Info("progress", "file", name, "imported", res.Imported)
		}
	}

	if err := imp.writer.Flush(ctx); err != nil {
		return fmt.Errorf("final flush: %w", err)
	}

	imp.log.Info("source complete", "file", name,
		"processed", res.Processed,
		"imported", res.Imported,
		"skipped", res.Skipped,
	)
	return nil
}
