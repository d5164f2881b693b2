package roster

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnreadablePDF indicates the document could not be opened or parsed at
// all (corrupt or encrypted bytes). It is fatal to the whole extraction and
// never retried.
var ErrUnreadablePDF = errors.New("unreadable PDF document")

// MalformedLayoutError indicates a located table has fewer columns than the
// declared department hint requires. It is fatal to that table only; other
// tables in the same document may still produce records.
type MalformedLayoutError struct {
	Page       int
	Hint       DepartmentHint
	Columns    int
	MinColumns int
}

func (e *MalformedLayoutError) Error() string {
	return fmt.Sprintf("table on page %d has %d columns, %s requires at least %d",
		e.Page, e.Columns, e.Hint, e.MinColumns)
}

// MalformedCellError indicates a single cell violated its expected shape,
// e.g. an identity cell with embedded line breaks. The owning record is
// dropped and reported as a warning; extraction continues.
type MalformedCellError struct {
	Column string
	Lines  int
}

func (e *MalformedCellError) Error() string {
	return fmt.Sprintf("%s cell has %d lines, expected 1", e.Column, e.Lines)
}
