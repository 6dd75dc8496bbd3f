package repository

import (
	"context"
	"time"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type CalorieLogRepository struct {
	db DBTX
}

func NewCalorieLogRepository(db DBTX) *CalorieLogRepository {
	return &CalorieLogRepository{db: db}
}

func (r *CalorieLogRepository) Create(ctx context.Context, userID int64, calories int, recordedAt time.Time) (*models.CalorieLog, error) {
	query := `
		INSERT INTO calorie_logs (user_id, calories, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, calories, recorded_at, created_at, updated_at
	`
	var entry models.CalorieLog
	err := r.db.QueryRow(ctx, query, userID, calories, recordedAt).Scan(
		&entry.ID, &entry.UserID, &entry.Calories, &entry.RecordedAt, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *CalorieLogRepository) ListByUser(ctx context.Context, userID int64) ([]models.CalorieLog, error) {
	query := `
		SELECT id, user_id, calories, recorded_at, created_at, updated_at
		FROM calorie_logs
		WHERE user_id = $1
		ORDER BY recorded_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.CalorieLog, 0)
	for rows.Next() {
		var entry models.CalorieLog
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Calories, &entry.RecordedAt, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *CalorieLogRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM calorie_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type WaterLogRepository struct {
	db DBTX
}

func NewWaterLogRepository(db DBTX) *WaterLogRepository {
	return &WaterLogRepository{db: db}
}

func (r *WaterLogRepository) Create(ctx context.Context, userID int64, amountML int, recordedAt time.Time) (*models.WaterLog, error) {
	query := `
		INSERT INTO water_logs (user_id, amount_ml, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, amount_ml, recorded_at, created_at, updated_at
	`
	var entry models.WaterLog
	err := r.db.QueryRow(ctx, query, userID, amountML, recordedAt).Scan(
		&entry.ID, &entry.UserID, &entry.AmountML, &entry.RecordedAt, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WaterLogRepository) ListByUser(ctx context.Context, userID int64) ([]models.WaterLog, error) {
	query := `
		SELECT id, user_id, amount_ml, recorded_at, created_at, updated_at
		FROM water_logs
		WHERE user_id = $1
		ORDER BY recorded_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.WaterLog, 0)
	for rows.Next() {
		var entry models.WaterLog
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.AmountML, &entry.RecordedAt, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *WaterLogRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM water_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type MentalHealthLogRepository struct {
	db DBTX
}

func NewMentalHealthLogRepository(db DBTX) *MentalHealthLogRepository {
	return &MentalHealthLogRepository{db: db}
}

func (r *MentalHealthLogRepository) Create(ctx context.Context, userID int64, mood int, recordedAt time.Time) (*models.MentalHealthLog, error) {
	query := `
		INSERT INTO mental_health_logs (user_id, mood, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, mood, recorded_at, created_at, updated_at
	`
	var entry models.MentalHealthLog
	err := r.db.QueryRow(ctx, query, userID, mood, recordedAt).Scan(
		&entry.ID, &entry.UserID, &entry.Mood, &entry.RecordedAt, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *MentalHealthLogRepository) ListByUser(ctx context.Context, userID int64) ([]models.MentalHealthLog, error) {
	query := `
		SELECT id, user_id, mood, recorded_at, created_at, updated_at
		FROM mental_health_logs
		WHERE user_id = $1
		ORDER BY recorded_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.MentalHealthLog, 0)
	for rows.Next() {
		var entry models.MentalHealthLog
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Mood, &entry.RecordedAt, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *MentalHealthLogRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM mental_health_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
