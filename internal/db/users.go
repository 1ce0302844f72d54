package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/task-recommender/internal/types"
)

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := db.pool.QueryRow(ctx,
		`SELECT id, login, name, tags FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Login, &u.Name, &u.Tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u.Tags == nil {
		u.Tags = []string{}
	}
	return u, nil
}

// GetWorkerStats averages complexity and expected time over the user's completed tasks.
// Averages fall back to DefaultWorkerComplexity and DefaultWorkerTime when
// nothing has been completed.
func (db *DB) GetWorkerStats(ctx context.Context, userID int64) (*WorkerStats, error) {
	stats := &WorkerStats{}
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(t.id),
		        COALESCE(AVG(t.complexity)::float8, $2),
		        COALESCE(AVG(t.expected_time), $3)
		 FROM completed_tasks c
		 JOIN tasks t ON t.id = c.task_id
		 WHERE c.user_id = $1`,
		userID, DefaultWorkerComplexity, DefaultWorkerTime,
	).Scan(&stats.Completed, &stats.AvgComplexity, &stats.AvgTime)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker stats: %w", err)
	}
	return stats, nil
}

// WorkerProfile builds the ranking record of a user: their tags plus the
// averages of their completed tasks.
func (db *DB) WorkerProfile(ctx context.Context, userID int64) (types.Entity, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return types.Entity{}, err
	}
	stats, err := db.GetWorkerStats(ctx, userID)
	if err != nil {
		return types.Entity{}, err
	}
	return types.Entity{
		Complexity: stats.AvgComplexity,
		Time:       stats.AvgTime,
		Tags:       user.Tags,
	}, nil
}
