package puzzle

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty         = errors.New("no rows")
	ErrNoWidth       = errors.New("no cells in any row")
	ErrNoGoal        = errors.New("no goal marker")
	ErrDuplicateGoal = errors.New("more than one goal marker")
	ErrGoalPlacement = errors.New("goal marker must follow a cell")
	ErrBadChar       = errors.New("unexpected character")
)

// ParseError reports malformed puzzle text. Line and Column are 1-based and
// zero when the problem is structural rather than tied to one character.
type ParseError struct {
	Line   int
	Column int
	Char   rune
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Char != 0:
		return fmt.Sprintf("puzzle: line %d col %d: %v %q", e.Line, e.Column, e.Err, e.Char)
	case e.Line > 0:
		return fmt.Sprintf("puzzle: line %d col %d: %v", e.Line, e.Column, e.Err)
	default:
		return "puzzle: " + e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
