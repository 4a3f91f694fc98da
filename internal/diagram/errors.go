package diagram

import (
	"errors"
	"fmt"
)

// ErrDiagramNotFound is returned when a page has no diagram data cell.
var ErrDiagramNotFound = errors.New("diagram cell not found")

// MalformedDiagramError reports markup that does not have the expected shape.
type MalformedDiagramError struct {
	Reason string
	Ref    string // offending image reference or stem, if any
}

func (e *MalformedDiagramError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("malformed diagram: %s", e.Reason)
	}
	return fmt.Sprintf("malformed diagram: %s: %q", e.Reason, e.Ref)
}

// EmptyStringError reports a string (grid row) with no selectable marker.
type EmptyStringError struct {
	Row int
}

func (e *EmptyStringError) Error() string {
	return fmt.Sprintf("empty string in diagram: row %d has no marker", e.Row)
}
