package repository

import (
	"context"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

// GoalRepository reads the immutable goal reference table.
type GoalRepository struct {
	db DBTX
}

func NewGoalRepository(db DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM goals WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *GoalRepository) List(ctx context.Context) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM goals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.Name); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}
