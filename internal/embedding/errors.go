package embedding

import (
	"errors"
	"fmt"
)

// ErrUnknownTag is matched by every UnknownTagError via errors.Is.
var ErrUnknownTag = errors.New("unknown tag")

// UnknownTagError reports a tag that the vector provider has no entry for.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag %q", e.Tag)
}

// Is makes errors.Is(err, ErrUnknownTag) hold for any UnknownTagError.
func (e *UnknownTagError) Is(target error) bool {
	return target == ErrUnknownTag
}

// DimensionError reports a vector whose length does not match the provider dimension.
type DimensionError struct {
	Tag  string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("vector for tag %q has dimension %d, want %d", e.Tag, e.Got, e.Want)
}

// ModelFormatError represents an error while parsing a text vector model
type ModelFormatError struct {
	Line    int
	Message string
	Cause   error
}

func (e *ModelFormatError) Error() string {
	msg := fmt.Sprintf("model format error at line %d: %s", e.Line, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ModelFormatError) Unwrap() error {
	return e.Cause
}
