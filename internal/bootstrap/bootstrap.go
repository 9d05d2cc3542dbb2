// Package bootstrap implements the Lazy Bootstrap of spec §4.10: a
// mutex-guarded one-shot initializer that builds the catalog and its
// derived indexes on the first Ensure call rather than at construction.
// cmd/catalogd calls Ensure once at process startup, before it serves any
// query, so in the shipped binary the catalog is built eagerly.
// Concurrent first callers block on the same mutex until the single
// builder completes; every later caller, success or failure, replays the
// cached result with no further I/O.
package bootstrap

import (
	"context"
	"sync"
	"time"

	"catalogd/internal/catalog"
	"catalogd/internal/catalogerr"
	"catalogd/internal/observability"
	"catalogd/internal/search/index"
)

// Summary reports what one ingestion run produced: the teacher's
// ScanRunOutput{FilesScanned, Modules, DurationMs, Warnings} shape
// generalized to this catalog's definition counts.
type Summary struct {
	Counts   map[catalog.DefinitionKind]int
	Warnings []catalogerr.Warning
	Duration time.Duration
}

// Result is the published snapshot: catalog, derived indexes, and the
// ingestion summary that produced them.
type Result struct {
	Catalog *catalog.Catalog
	Indexes *index.Set
	Summary Summary
}

// BuildFunc performs the actual ingestion (HBK or JSON), returning the
// fully resolved catalog plus any non-fatal warnings collected along the
// way. A fatal ingestion failure (CorruptContainer, UnsupportedFormat,
// MalformedToc) is returned as err.
type BuildFunc func() (*catalog.Catalog, []catalogerr.Warning, error)

// Bootstrapper guards a BuildFunc behind the single-writer critical
// section spec §5 describes: before Ensure's first call returns, callers
// serialize on mu building the result; every subsequent Ensure call
// still takes mu, but only to read the cached (result, err) pair back.
//
// IngestionAborted is cached too (spec §7): the catalog is never retried
// within one process lifetime, so a caller that triggered a fatal failure
// and every caller after it see the same wrapped error.
type Bootstrapper struct {
	mu      sync.Mutex
	done    bool
	result  *Result
	err     error
	build   BuildFunc
	source  string // "hbk" | "json", used as the ingestion_duration metric label
}

// New returns a Bootstrapper that will call build exactly once, on the
// first Ensure call, regardless of how many goroutines call Ensure
// concurrently before that build completes.
func New(source string, build BuildFunc) *Bootstrapper {
	return &Bootstrapper{source: source, build: build}
}

// Ensure returns the published Result, building it on the first call.
// Concurrent first callers block on b.mu until the single builder
// finishes; a failed build's error is cached and replayed without
// retrying ingestion.
func (b *Bootstrapper) Ensure() (*Result, error) {
	_, span := observability.Tracer.Start(context.Background(), "bootstrap.Ensure")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done {
		return b.result, b.err
	}

	start := time.Now()
	cat, warnings, err := b.build()
	duration := time.Since(start)

	if err != nil {
		b.err = catalogerr.Aborted(err)
		b.done = true
		observability.IngestionDuration.WithLabelValues(b.source).Observe(duration.Seconds())
		return nil, b.err
	}

	pageSkips := countPageSkips(warnings)
	ownerWarnings := cat.ResolveOwners()
	for _, w := range ownerWarnings {
		warnings = append(warnings, catalogerr.Warning{
			Code:    catalogerr.CodePageSkipped,
			Message: "dangling owner_type_name: " + w.MemberName + " -> " + w.OwnerType,
		})
	}
	cat.Freeze()

	idx := index.Build(cat.AllDefinitions())
	counts := cat.CountsByKind()

	for kind, n := range counts {
		observability.CatalogDefinitions.WithLabelValues(string(kind)).Set(float64(n))
	}
	observability.IngestionDuration.WithLabelValues(b.source).Observe(duration.Seconds())
	observability.PagesSkippedTotal.Add(float64(pageSkips))

	b.result = &Result{
		Catalog: cat,
		Indexes: idx,
		Summary: Summary{Counts: counts, Warnings: warnings, Duration: duration},
	}
	b.done = true
	return b.result, nil
}

func countPageSkips(warnings []catalogerr.Warning) int {
	n := 0
	for _, w := range warnings {
		if w.Code == catalogerr.CodePageSkipped {
			n++
		}
	}
	return n
}
