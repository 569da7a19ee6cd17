// Package crawl runs the full discovery pipeline: fan out to every source,
// merge results by slug in priority order, drop low-quality records, and
// sync the survivors to the output directory.
package crawl

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/sources"
)

// Sink receives the surviving records and run summary after a successful
// crawl. Sink failures are reported as warnings and never fail the run.
type Sink interface {
	SaveRun(ctx context.Context, summary Summary, agents []agent.Agent) error
}

// Summary describes one pipeline run.
type Summary struct {
	RunID      string         `json:"runId"`
	StartedAt  time.Time      `json:"startedAt"`
	Duration   time.Duration  `json:"duration"`
	PerSource  map[string]int `json:"perSource"`
	Discovered int            `json:"discovered"`
	Merged     int            `json:"merged"`
	Kept       int            `json:"kept"`
	Written    int            `json:"written"`
	Removed    int            `json:"removed"`
	Categories map[string]int `json:"categories"`
	Frameworks map[string]int `json:"frameworks"`
	Languages  map[string]int `json:"languages"`
}

// Pipeline wires the sources to the writer. The Sources slice must be in
// merge priority order; its position, not its completion time, decides
// precedence.
type Pipeline struct {
	Sources   []sources.Source
	OutputDir string
	Writer    *Writer
	Sink      Sink
	Logger    *log.Logger
}

// Run executes one full crawl and always returns a Summary, even when every
// source came back empty. Only failures outside the fetch/merge/filter/write
// boundary surface as errors.
func (p *Pipeline) Run(ctx context.Context) (Summary, []agent.Agent, error) {
	logger := p.logger()
	start := time.Now()

	summary := Summary{
		RunID:      uuid.NewString(),
		StartedAt:  start.UTC(),
		PerSource:  map[string]int{},
		Categories: map[string]int{},
		Frameworks: map[string]int{},
		Languages:  map[string]int{},
	}

	// Fan out. Each source fills its own slot so priority order survives
	// whatever order the fetches finish in.
	results := make([][]agent.Agent, len(p.Sources))
	var wg sync.WaitGroup
	for i, src := range p.Sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			agents, err := src.Fetch(ctx)
			if err != nil {
				logger.Warn("source failed, continuing without it", "source", src.Name(), "err", err)
				return
			}
			results[i] = agents
		}(i, src)
	}
	wg.Wait()

	for i, src := range p.Sources {
		summary.PerSource[src.Name()] = len(results[i])
		summary.Discovered += len(results[i])
	}

	merged := MergeAll(results...)
	summary.Merged = len(merged)

	kept := Filter(merged)
	summary.Kept = len(kept)

	w := p.Writer
	if w == nil {
		w = &Writer{}
	}
	written, removed, err := w.Sync(p.OutputDir, kept)
	if err != nil {
		return summary, nil, err
	}
	summary.Written = written
	summary.Removed = removed

	for _, a := range kept {
		summary.Categories[a.Category]++
		summary.Frameworks[a.Framework]++
		summary.Languages[a.Language]++
	}
	summary.Duration = time.Since(start)

	if p.Sink != nil {
		if err := p.Sink.SaveRun(ctx, summary, kept); err != nil {
			logger.Warn("snapshot store unavailable", "err", err)
		}
	}
	return summary, kept, nil
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
