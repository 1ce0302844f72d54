//go:build integration

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Write helpers used to seed the quest board in integration tests. The
// recommender itself only reads tasks and users.

var ErrTaskNotFound = errors.New("task not found")

// CreateUser inserts a user with the given skill tags.
func (db *DB) CreateUser(ctx context.Context, login, name string, tags []string) (*User, error) {
	if tags == nil {
		tags = []string{}
	}
	u := &User{Login: login, Name: name}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (login, name, tags) VALUES ($1, $2, $3)
		 RETURNING id, tags`,
		login, name, tags,
	).Scan(&u.ID, &u.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetTask retrieves a task by ID.
func (db *DB) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// CreateTask inserts an unassigned task and returns it with its ID set.
func (db *DB) CreateTask(ctx context.Context, description string, class Class, expectedTime float64, tags []string) (*Task, error) {
	if tags == nil {
		tags = []string{}
	}
	row := db.pool.QueryRow(ctx,
		`INSERT INTO tasks (description, complexity, expected_time, tags)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+taskColumns,
		description, int16(class), expectedTime, tags,
	)
	task, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// AssignTask marks a task as taken by a user.
func (db *DB) AssignTask(ctx context.Context, taskID, userID int64) error {
	tag, err := db.pool.Exec(ctx, `UPDATE tasks SET assigned_to = $1 WHERE id = $2`, userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to assign task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CompleteTask records that a user finished a task and releases the assignment.
func (db *DB) CompleteTask(ctx context.Context, taskID, userID int64) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE tasks SET assigned_to = NULL WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to release task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO completed_tasks (user_id, task_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, task_id) DO NOTHING`,
		userID, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit completion: %w", err)
	}
	return nil
}
