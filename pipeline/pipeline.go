// Package pipeline connects the catalog source to the record sink for one
// run: fetch everything, then save once.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"bookscrape/models"
)

// Source yields the catalog entries of one fetch in document order.
type Source interface {
	FetchData(ctx context.Context) ([]models.Book, error)
}

// Sink persists a batch of records as one unit and reports how many it took.
type Sink interface {
	Save(ctx context.Context, books []models.Book) (int, error)
}

// Result summarizes one run.
type Result struct {
	Extracted int
	Saved     int
}

// Pipeline is the one-shot orchestration of a source and a sink.
type Pipeline struct {
	source Source
	sink   Sink
}

// New builds a pipeline over a source and a sink.
func New(source Source, sink Sink) *Pipeline {
	return &Pipeline{source: source, sink: sink}
}

// Run fetches the catalog fully, then saves every record in one batch. An
// empty extraction result is a normal outcome: the sink is not invoked and
// the result reports nothing to save. Source and sink faults propagate
// wrapped but otherwise unchanged.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	books, err := p.source.FetchData(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch: %w", err)
	}

	result := Result{Extracted: len(books)}
	if len(books) == 0 {
		slog.Info("nothing to save")
		return result, nil
	}

	saved, err := p.sink.Save(ctx, books)
	if err != nil {
		return result, fmt.Errorf("save: %w", err)
	}
	result.Saved = saved

	slog.Info("run complete",
		slog.Int("extracted", result.Extracted),
		slog.Int("saved", result.Saved),
	)
	return result, nil
}
