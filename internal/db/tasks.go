package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, description, complexity, expected_time, tags, assigned_to, created_at`

// ListAvailableTasks returns tasks that are neither assigned nor completed, ordered by ID.
func (db *DB) ListAvailableTasks(ctx context.Context) ([]Task, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks t
		 WHERE t.assigned_to IS NULL
		   AND NOT EXISTS (SELECT 1 FROM completed_tasks c WHERE c.task_id = t.id)
		 ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list available tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list available tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (Task, error) {
	var (
		t          Task
		complexity int16
		assignedTo *int32
	)
	if err := row.Scan(&t.ID, &t.Description, &complexity, &t.ExpectedTime, &t.Tags, &assignedTo, &t.CreatedAt); err != nil {
		return Task{}, err
	}
	t.Complexity = ClassFromInt(complexity)
	if assignedTo != nil {
		id := int64(*assignedTo)
		t.AssignedTo = &id
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, nil
}
