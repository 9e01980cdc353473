package engine

import "errors"

var (
	// ErrInvalidSelection: a field the mode needs is missing, or the mode is unknown.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNotFound: the selected country or year is not in the result table.
	ErrNotFound = errors.New("not found")
)

// Code is a machine-readable error code for API clients.
type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInvalidSelection Code = "INVALID_SELECTION"
	CodeNotFound         Code = "NOT_FOUND"
)

// ErrorCode maps a resolver error to its Code.
func ErrorCode(err error) Code {
	switch {
	case errors.Is(err, ErrInvalidSelection):
		return CodeInvalidSelection
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeUnknown
	}
}
