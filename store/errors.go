package store

import "fmt"

// ErrPersistence indicates the database rejected an operation. Any open
// transaction was rolled back before the error surfaced.
type ErrPersistence struct {
	Op  string
	Err error
}

func (e ErrPersistence) Error() string {
	return fmt.Errorf("persist %s: %w", e.Op, e.Err).Error()
}

func (e ErrPersistence) Unwrap() error {
	return e.Err
}
