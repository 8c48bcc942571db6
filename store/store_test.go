package store

import (
	"context"
	"path/filepath"
	"testing"

	"bookscrape/models"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleBooks() []models.Book {
	return []models.Book{
		{Title: "A Light in the Attic", Price: 51.77, Availability: "In stock", Rating: "Three"},
		{Title: "Tipping the Velvet", Price: 53.74, Availability: "In stock (20 available)", Rating: "One"},
		{Title: "Soumission", Price: 50.10, Availability: "In stock", Rating: "One"},
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	books := sampleBooks()
	saved, err := s.Save(ctx, books)
	require.NoError(t, err)
	require.Equal(t, len(books), saved)

	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, len(books))
	for i, row := range rows {
		require.Equal(t, books[i], row.Book)
		require.NotZero(t, row.ID)
	}
	require.Less(t, rows[0].ID, rows[1].ID)
	require.Less(t, rows[1].ID, rows[2].ID)
}

func TestSaveSingleRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, []models.Book{
		{Title: "A Light in the Attic", Price: 51.77, Availability: "In stock", Rating: "Three"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, saved)

	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].ID)
	require.Equal(t, "A Light in the Attic", rows[0].Title)
	require.Equal(t, 51.77, rows[0].Price)
	require.Equal(t, "In stock", rows[0].Availability)
	require.Equal(t, "Three", rows[0].Rating)
}

func TestSaveEmpty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, saved)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestSaveAtomicity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	batch := sampleBooks()
	// violates the price check mid-batch
	batch[1].Price = -1

	_, err := s.Save(ctx, batch)
	require.Error(t, err)

	var persistence ErrPersistence
	require.ErrorAs(t, err, &persistence)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	// the handle stays usable after a failed save
	saved, err := s.Save(ctx, sampleBooks())
	require.NoError(t, err)
	require.Equal(t, 3, saved)
}

func TestSaveCancelledContext(t *testing.T) {
	s := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// an interrupt before the save phase aborts it; the table stays empty
	_, err := s.Save(ctx, sampleBooks())
	var persistence ErrPersistence
	require.ErrorAs(t, err, &persistence)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")
	ctx := context.Background()

	s, err := Open(Config{Path: path})
	require.NoError(t, err)
	_, err = s.Save(ctx, sampleBooks())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// reopening keeps the schema and the rows
	s, err = Open(Config{Path: path})
	require.NoError(t, err)
	defer s.Close()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, len(sampleBooks()), count)
}

func TestRepeatSavesAppendRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.Save(ctx, sampleBooks())
		require.NoError(t, err)
	}

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2*len(sampleBooks()), count)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}
