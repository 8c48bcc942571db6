package pipeline

import (
	"context"
	"errors"
	"testing"

	"bookscrape/models"
)

type stubSource struct {
	books []models.Book
	err   error
	calls int
}

func (s *stubSource) FetchData(ctx context.Context) ([]models.Book, error) {
	s.calls++
	return s.books, s.err
}

type collectingSink struct {
	books []models.Book
	err   error
	calls int
}

func (c *collectingSink) Save(ctx context.Context, books []models.Book) (int, error) {
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	c.books = append(c.books, books...)
	return len(books), nil
}

func TestRunSavesExtractedRecords(t *testing.T) {
	books := []models.Book{
		{Title: "Book 1", Price: 1.00, Availability: "In stock", Rating: "One"},
		{Title: "Book 2", Price: 2.00, Availability: "In stock", Rating: "Two"},
	}
	source := &stubSource{books: books}
	sink := &collectingSink{}

	result, err := New(source, sink).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Extracted != 2 || result.Saved != 2 {
		t.Fatalf("result = %+v, want 2 extracted and 2 saved", result)
	}
	if len(sink.books) != 2 {
		t.Fatalf("sink holds %d books, want 2", len(sink.books))
	}
}

func TestRunEmptyExtractionSkipsSink(t *testing.T) {
	source := &stubSource{}
	sink := &collectingSink{}

	result, err := New(source, sink).Run(context.Background())
	if err != nil {
		t.Fatalf("empty extraction should not error, got %v", err)
	}
	if result.Extracted != 0 || result.Saved != 0 {
		t.Fatalf("result = %+v, want zero counts", result)
	}
	if sink.calls != 0 {
		t.Fatalf("sink was invoked %d times, want 0", sink.calls)
	}
}

func TestRunSourceFailure(t *testing.T) {
	wantErr := errors.New("catalog down")
	source := &stubSource{err: wantErr}
	sink := &collectingSink{}

	_, err := New(source, sink).Run(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want wrapped %v", err, wantErr)
	}
	if sink.calls != 0 {
		t.Fatalf("sink was invoked on a failed fetch")
	}
}

func TestRunSinkFailure(t *testing.T) {
	wantErr := errors.New("disk full")
	source := &stubSource{books: []models.Book{
		{Title: "Book", Price: 1.00, Availability: "In stock", Rating: "One"},
	}}
	sink := &collectingSink{err: wantErr}

	result, err := New(source, sink).Run(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want wrapped %v", err, wantErr)
	}
	if result.Saved != 0 {
		t.Fatalf("saved = %d, want 0", result.Saved)
	}
}
