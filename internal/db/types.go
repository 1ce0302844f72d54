package db

import (
	"errors"
	"slices"
	"time"

	"github.com/jonathan/task-recommender/internal/types"
)

// ErrUserNotFound is returned when a user ID has no row.
var ErrUserNotFound = errors.New("user not found")

// Class is the difficulty grade of a task, stored as a small integer.
type Class int16

// Task classes, from easiest to hardest.
const (
	ClassC Class = 0
	ClassB Class = 1
	ClassA Class = 2
)

// ClassFromInt maps a stored value to a Class. Unknown values map to ClassC.
func ClassFromInt(v int16) Class {
	switch Class(v) {
	case ClassB:
		return ClassB
	case ClassA:
		return ClassA
	default:
		return ClassC
	}
}

func (c Class) String() string {
	switch c {
	case ClassB:
		return "B"
	case ClassA:
		return "A"
	default:
		return "C"
	}
}

// Default worker attributes used when a user has not completed any task.
const (
	DefaultWorkerComplexity = 0.0
	DefaultWorkerTime       = 5.0
)

// Task is a quest board task.
type Task struct {
	ID           int64     `json:"id"`
	Description  string    `json:"description"`
	Complexity   Class     `json:"complexity"`
	ExpectedTime float64   `json:"expected_time"`
	Tags         []string  `json:"tags"`
	AssignedTo   *int64    `json:"assigned_to,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Entity converts the task to its ranking record; complexity is the class number.
func (t Task) Entity() types.Entity {
	tags := slices.Clone(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return types.Entity{
		Complexity: float64(t.Complexity),
		Time:       t.ExpectedTime,
		Tags:       tags,
	}
}

// UserRecommendation converts the task to its API representation.
func (t Task) UserRecommendation() types.UserRecommendation {
	tags := slices.Clone(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return types.UserRecommendation{
		TaskID:       t.ID,
		Class:        t.Complexity.String(),
		ExpectedTime: t.ExpectedTime,
		Tags:         tags,
		Description:  t.Description,
	}
}

// User is a registered worker.
type User struct {
	ID    int64    `json:"id"`
	Login string   `json:"login"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
}

// WorkerStats summarises a user's completed tasks.
type WorkerStats struct {
	Completed     int64
	AvgComplexity float64
	AvgTime       float64
}
