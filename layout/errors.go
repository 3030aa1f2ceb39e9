package layout

import (
	"errors"
	"fmt"
)

type Format string

const (
	FormatCSV       Format = "csv"
	FormatJSON      Format = "json"
	FormatMacro     Format = "macro"
	FormatKeymapCSV Format = "keymap-csv"
	FormatQMK       Format = "qmk"
)

var (
	// ErrUnknownFormat is returned when no supported layout format yields any key.
	ErrUnknownFormat = errors.New("unknown layout format")
	// ErrNotJSON means the text is not a JSON document at all.
	ErrNotJSON = errors.New("not a JSON document")

	errMissingField = errors.New("missing required field")
	errNotPositive  = errors.New("value must be positive")
	errWrongType    = errors.New("unexpected value type")
)

// ParseError describes a malformed or missing field. Line is 1-based and is zero
// when the format has no meaningful line (e.g. JSON array entries, where Line is the
// entry index plus one).
type ParseError struct {
	Format Format
	Line   int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: line %d: %v", e.Format, e.Line, e.Err)
	}

	return fmt.Sprintf("%s: line %d: field %q: %v", e.Format, e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
