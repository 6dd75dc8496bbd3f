package repository

import (
	"context"
	"time"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type PhysicalHealthLogRepository struct {
	db DBTX
}

func NewPhysicalHealthLogRepository(db DBTX) *PhysicalHealthLogRepository {
	return &PhysicalHealthLogRepository{db: db}
}

type CreatePhysicalHealthLogInput struct {
	UserID     int64
	Weight     float64
	Height     float64
	RecordedAt time.Time
}

func (r *PhysicalHealthLogRepository) Create(ctx context.Context, input CreatePhysicalHealthLogInput) (*models.PhysicalHealthLog, error) {
	query := `
		INSERT INTO physical_health_logs (user_id, weight, height, recorded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, weight, height, recorded_at, created_at, updated_at
	`
	var entry models.PhysicalHealthLog
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.Weight,
		input.Height,
		input.RecordedAt,
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Weight,
		&entry.Height,
		&entry.RecordedAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PhysicalHealthLogRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM physical_health_logs WHERE user_id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}

func (r *PhysicalHealthLogRepository) ListByUser(ctx context.Context, userID int64) ([]models.PhysicalHealthLog, error) {
	query := `
		SELECT id, user_id, weight, height, recorded_at, created_at, updated_at
		FROM physical_health_logs
		WHERE user_id = $1
		ORDER BY recorded_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.PhysicalHealthLog, 0)
	for rows.Next() {
		var entry models.PhysicalHealthLog
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Weight,
			&entry.Height,
			&entry.RecordedAt,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
