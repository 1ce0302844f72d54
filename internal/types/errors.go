// Package types provides type definitions for structured data used throughout the task-recommender system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// InvalidEntityError reports a worker or task record that violates the entity shape.
type InvalidEntityError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidEntityError) Error() string {
	msg := "invalid entity"
	if e.Field != "" {
		msg = fmt.Sprintf("invalid entity: %s %s", e.Field, e.Message)
	} else if e.Message != "" {
		msg = fmt.Sprintf("invalid entity: %s", e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *InvalidEntityError) Unwrap() error {
	return e.Cause
}
