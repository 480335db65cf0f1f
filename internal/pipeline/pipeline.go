// Package pipeline composes the fetch, transform and load stages into one
// sequential run and carries the declarative job definition handed to the
// external orchestrator. There is no scheduler here: whoever invokes the
// binary owns scheduling, retries and alerting.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/bookflow/internal/googlebooks"
	"github.com/lepinkainen/bookflow/internal/transform"
)

// FetchFunc retrieves raw volumes from the Books API.
type FetchFunc func(ctx context.Context) ([]googlebooks.Volume, error)

// TransformFunc normalizes raw volumes into book records. Must be pure.
type TransformFunc func([]googlebooks.Volume) []transform.Record

// LoadFunc persists a batch of records into the destination table.
type LoadFunc func(ctx context.Context, records []transform.Record) error

// Pipeline runs fetch, transform and load in strict sequence.
// The first failing stage aborts the run and its error propagates unchanged,
// wrapped only with the stage name.
type Pipeline struct {
	job       Job
	fetch     FetchFunc
	transform TransformFunc
	load      LoadFunc
}

// New creates a Pipeline for the given job and stages.
func New(job Job, fetch FetchFunc, transformFn TransformFunc, load LoadFunc) *Pipeline {
	return &Pipeline{
		job:       job,
		fetch:     fetch,
		transform: transformFn,
		load:      load,
	}
}

// Run executes one fetch-transform-load sequence.
func (p *Pipeline) Run(ctx context.Context) error {
	slog.Info("Starting pipeline run", "job", p.job.Name, "query", p.job.Query, "max_results", p.job.MaxResults)

	volumes, err := p.fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch stage: %w", err)
	}
	slog.Info("Fetched volumes", "job", p.job.Name, "count", len(volumes))

	records := p.transform(volumes)

	if err := p.load(ctx, records); err != nil {
		return fmt.Errorf("load stage: %w", err)
	}

	slog.Info("Pipeline run succeeded", "job", p.job.Name, "inserted", len(records))
	return nil
}
