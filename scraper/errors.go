package scraper

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable indicates the catalog page or its listing container
// never materialized. Fatal to the run.
type ErrSourceUnavailable struct {
	Err error
}

func (e ErrSourceUnavailable) Error() string {
	return fmt.Errorf("source unavailable: %w", e.Err).Error()
}

func (e ErrSourceUnavailable) Unwrap() error {
	return e.Err
}

// ErrExtraction indicates a matched catalog entry failed field parsing.
// One malformed entry fails the whole page.
type ErrExtraction struct {
	Field string
	Err   error
}

func (e ErrExtraction) Error() string {
	return fmt.Errorf("extract %s: %w", e.Field, e.Err).Error()
}

func (e ErrExtraction) Unwrap() error {
	return e.Err
}

func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var unavailable ErrSourceUnavailable
	if errors.As(err, &unavailable) {
		return "source_unavailable"
	}
	var extraction ErrExtraction
	if errors.As(err, &extraction) {
		return "extraction"
	}
	return "other"
}
