// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs entries through resolution, text acquisition, and
// section splitting, and assembles one PaperRecord per entry.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/scienceparse/internal/acquire"
	"github.com/pdiddy/scienceparse/internal/sections"
	"github.com/pdiddy/scienceparse/pkg/types"
)

// CandidateResolver maps an entry to its ordered candidate PDF URLs.
type CandidateResolver interface {
	Resolve(ctx context.Context, entry string) ([]string, error)
}

// Pipeline processes a batch of entries.
type Pipeline struct {
	Resolver CandidateResolver
	Fetcher  acquire.PageFetcher
	Metadata types.Metadata

	// Workers bounds concurrent entries. Values below 1 mean sequential.
	Workers int

	// Log receives per-entry status lines. Nil discards them. When
	// Workers > 1 it must be safe for concurrent use (see SyncWriter).
	Log io.Writer
}

// Summary holds counts from one batch run.
type Summary struct {
	RunID string

	// Extracted counts entries for which some candidate produced text.
	Extracted int

	// Empty counts entries that produced no text; their records carry
	// empty abstract and sections.
	Empty int

	// ResolveErrors counts entries whose lookup failed outright. They are
	// also counted in Empty.
	ResolveErrors int
}

// Total returns the number of entries processed.
func (s Summary) Total() int {
	return s.Extracted + s.Empty
}

// BuildRecord assembles the output record for entry. The first section
// becomes the abstract and the rest become sections. Title, author, and
// year come from meta.
func BuildRecord(entry string, secs []types.Section, meta types.Metadata) types.PaperRecord {
	rec := types.PaperRecord{
		Title:    meta.Title,
		Authors:  []types.Author{{Affiliations: []string{}, Name: meta.Author}},
		Year:     meta.Year,
		ID:       entry,
		Sections: []types.Section{},
	}
	if len(secs) > 0 {
		rec.AbstractText = secs[0].Text
		rec.Sections = append(rec.Sections, secs[1:]...)
	}
	return rec
}

// ProcessEntry resolves, fetches, and splits one entry. A resolution
// error is reported and treated as an entry with no candidates; the
// returned result is always usable.
func (p *Pipeline) ProcessEntry(ctx context.Context, entry string) (types.ExtractionResult, error) {
	w := p.log()
	result := types.ExtractionResult{Entry: entry}

	fmt.Fprintf(w, "resolving: %s (%s)\n", entry, acquire.Classify(entry))
	candidates, err := p.Resolver.Resolve(ctx, entry)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", entry, err)
	}
	result.Candidates = candidates

	result.Pages, result.SourceURL = acquire.Acquire(ctx, p.Fetcher, candidates)
	result.Sections = sections.Split(result.Pages)

	if result.Extracted() {
		fmt.Fprintf(w, "extracted %s (%d pages, %d sections) from %s\n",
			entry, len(result.Pages), len(result.Sections), result.SourceURL)
	} else {
		fmt.Fprintf(w, "no text  %s (%d candidates)\n", entry, len(candidates))
	}
	return result, err
}

// Run processes entries and returns one record per entry in input
// order. Individual entry failures never abort the run; only context
// cancellation does.
func (p *Pipeline) Run(ctx context.Context, entries []string) ([]types.PaperRecord, Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	logx.Debugf("run %s: %d entries, %d workers", summary.RunID, len(entries), p.workers())

	results := make([]types.ExtractionResult, len(entries))
	resolveErrs := make([]bool, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, entry := range entries {
		i, entry := i, entry // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.ProcessEntry(gctx, entry)
			results[i] = res
			resolveErrs[i] = err != nil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, summary, fmt.Errorf("run %s: %w", summary.RunID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, summary, fmt.Errorf("run %s: %w", summary.RunID, err)
	}

	records := make([]types.PaperRecord, len(entries))
	for i, res := range results {
		records[i] = BuildRecord(entries[i], res.Sections, p.Metadata)
		if res.Extracted() {
			summary.Extracted++
		} else {
			summary.Empty++
		}
		if resolveErrs[i] {
			summary.ResolveErrors++
		}
	}

	fmt.Fprintf(p.log(), "Batch summary: %d extracted, %d without text, %d lookup errors (run %s)\n",
		summary.Extracted, summary.Empty, summary.ResolveErrors, summary.RunID)
	return records, summary, nil
}

func (p *Pipeline) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}

func (p *Pipeline) log() io.Writer {
	if p.Log == nil {
		return io.Discard
	}
	return p.Log
}

// SyncWriter serializes writes to w so concurrent stages can share one
// status stream.
func SyncWriter(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
