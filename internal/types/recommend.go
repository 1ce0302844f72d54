// Package types provides type definitions for structured data used throughout the task-recommender system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RecommendRequest is the body of a single-worker recommendation call.
type RecommendRequest struct {
	Worker *Entity  `json:"worker" validate:"required"`
	Tasks  []Entity `json:"tasks" validate:"dive"`
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	return validationError(validate.Struct(r))
}

// BatchRequest ranks one shared task list for several workers independently.
type BatchRequest struct {
	Workers []Entity `json:"workers" validate:"required,min=1,dive"`
	Tasks   []Entity `json:"tasks" validate:"dive"`
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	return validationError(validate.Struct(r))
}

// Recommendation is a ranked task together with the scores that placed it.
type Recommendation struct {
	Index               int     `json:"index"` // position in the submitted task list
	Task                Entity  `json:"task"`
	TagSimilarity       float64 `json:"tag_similarity"`
	AttributeSimilarity float64 `json:"attribute_similarity"`
}

// UserRecommendation is a stored task recommended to a registered user.
type UserRecommendation struct {
	TaskID       int64    `json:"task_id"`
	Class        string   `json:"class"`
	ExpectedTime float64  `json:"expected_time"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
}
