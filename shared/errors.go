package shared

import (
	"errors"
	"fmt"
)

var (
	ErrTownNotFound   = errors.New("the specified town could not be found")
	ErrNationNotFound = errors.New("the specified nation could not be found")
)

// Returned when a payload, description or colour does not have the expected shape.
type ParseError struct {
	Reason string
}

func NewParseError(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

// Wraps a network or deserialization failure from one of the feeds.
type TransportError struct {
	Source string // URL or name of the feed
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error fetching %s:\n  %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
