// Package types provides type definitions for structured data used throughout the task-recommender system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entity is a worker profile or a candidate task.
type Entity struct {
	Complexity float64  `json:"complexity" validate:"finite"`
	Time       float64  `json:"time" validate:"finite"`
	Tags       []string `json:"tags" validate:"dive,required"`
}

// AttributePair is the (complexity, time) vector of an entity. No scaling is applied.
type AttributePair [2]float64

// Attributes returns the numeric attributes of the entity.
func (e Entity) Attributes() AttributePair {
	return AttributePair{e.Complexity, e.Time}
}

// Tuple returns the legacy wire representation [complexity, time, tags].
func (e Entity) Tuple() []any {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return []any{e.Complexity, e.Time, tags}
}

// MarshalJSON always emits a tags array, never null.
func (e Entity) MarshalJSON() ([]byte, error) {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(struct {
		Complexity float64  `json:"complexity"`
		Time       float64  `json:"time"`
		Tags       []string `json:"tags"`
	}{e.Complexity, e.Time, tags})
}

// UnmarshalJSON accepts the object form {"complexity":..,"time":..,"tags":[..]}
// and the tuple form [complexity, time, [tags]]. Every field must be present.
func (e *Entity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return e.unmarshalTuple(data)
	}

	var raw struct {
		Complexity json.RawMessage `json:"complexity"`
		Time       json.RawMessage `json:"time"`
		Tags       json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return &InvalidEntityError{Message: "entity must be an object or a [complexity, time, tags] array", Cause: err}
	}
	return e.assign(raw.Complexity, raw.Time, raw.Tags)
}

func (e *Entity) unmarshalTuple(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return &InvalidEntityError{Message: "malformed entity tuple", Cause: err}
	}
	if len(parts) != 3 {
		return &InvalidEntityError{Message: fmt.Sprintf("entity tuple must have 3 elements, got %d", len(parts))}
	}
	return e.assign(parts[0], parts[1], parts[2])
}

func (e *Entity) assign(complexity, time, tags json.RawMessage) error {
	var out Entity
	if err := decodeField("complexity", complexity, &out.Complexity); err != nil {
		return err
	}
	if err := decodeField("time", time, &out.Time); err != nil {
		return err
	}
	if len(tags) == 0 {
		return &InvalidEntityError{Field: "tags", Message: "is required"}
	}
	if err := json.Unmarshal(tags, &out.Tags); err != nil {
		return &InvalidEntityError{Field: "tags", Message: "must be an array of strings", Cause: err}
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	*e = out
	return nil
}

func decodeField(name string, raw json.RawMessage, dst *float64) error {
	if len(raw) == 0 || string(raw) == "null" {
		return &InvalidEntityError{Field: name, Message: "is required"}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &InvalidEntityError{Field: name, Message: "must be a number", Cause: err}
	}
	return nil
}
