package prep

import (
	"errors"
	"fmt"

	"github.com/banshee-data/adniprep/internal/table"
)

var (
	// ErrNotRead is returned by steps that need the raw table before Read.
	ErrNotRead = errors.New("source table has not been read")
	// ErrNotInitialized is returned by steps that need the working table
	// before Initialize.
	ErrNotInitialized = errors.New("working table has not been initialized")
	// ErrNoDictionary is returned by steps that need the column dictionary
	// before BuildColumnDictionary.
	ErrNoDictionary = errors.New("column dictionary has not been built")
)

// SourceReadError reports an unreadable or malformed source file.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read source %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// SchemaMismatchError reports a column that is expected but absent, already
// present, or missing from the column dictionary.
type SchemaMismatchError struct {
	Column string
	Reason string
	Err    error
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch on %s: %s", e.Column, e.Reason)
}

func (e *SchemaMismatchError) Unwrap() error { return e.Err }

// TypeCoercionError reports a cell that cannot be stored in its column's
// target dtype.
type TypeCoercionError struct {
	Column string
	Row    int
	Value  string
	Target table.Dtype
	Err    error
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("cannot store %q (column %s, row %d) as %s: %v", e.Value, e.Column, e.Row, e.Target, e.Err)
}

func (e *TypeCoercionError) Unwrap() error { return e.Err }

// DestinationWriteError reports an output that could not be written.
type DestinationWriteError struct {
	Path string
	Err  error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *DestinationWriteError) Unwrap() error { return e.Err }

// tableError maps errors from the table package onto the preparer's error
// taxonomy.
func tableError(column string, err error) error {
	var cellErr *table.CellError
	switch {
	case errors.As(err, &cellErr):
		return &TypeCoercionError{
			Column: cellErr.Column,
			Row:    cellErr.Row,
			Value:  cellErr.Value,
			Target: cellErr.Target,
			Err:    cellErr.Err,
		}
	case errors.Is(err, table.ErrColumnNotFound):
		return &SchemaMismatchError{Column: column, Reason: "column absent from working table", Err: err}
	case errors.Is(err, table.ErrDuplicateColumn):
		return &SchemaMismatchError{Column: column, Reason: "column already present in working table", Err: err}
	}
	return err
}
