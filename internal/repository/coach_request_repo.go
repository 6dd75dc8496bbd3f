package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type CoachRequestRepository struct {
	db DBTX
}

func NewCoachRequestRepository(db DBTX) *CoachRequestRepository {
	return &CoachRequestRepository{db: db}
}

const coachRequestColumns = `id, user_id, goal_id, cost, experience, bio, is_approved, created_at, updated_at`

func scanCoachRequest(row pgx.Row, request *models.BecomeCoachRequest) error {
	return row.Scan(
		&request.ID,
		&request.UserID,
		&request.GoalID,
		&request.Cost,
		&request.Experience,
		&request.Bio,
		&request.IsApproved,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
}

type CreateCoachRequestInput struct {
	UserID     int64
	GoalID     int64
	Cost       float64
	Experience int
	Bio        string
}

// Create relies on the partial unique index over pending rows: a second
// intake while one is undecided fails with a unique violation.
func (r *CoachRequestRepository) Create(ctx context.Context, input CreateCoachRequestInput) (*models.BecomeCoachRequest, error) {
	query := `
		INSERT INTO become_coach_requests (user_id, goal_id, cost, experience, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + coachRequestColumns
	var request models.BecomeCoachRequest
	err := scanCoachRequest(r.db.QueryRow(ctx, query,
		input.UserID,
		input.GoalID,
		input.Cost,
		input.Experience,
		input.Bio,
	), &request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *CoachRequestRepository) GetPendingByUserID(ctx context.Context, userID int64) (*models.BecomeCoachRequest, error) {
	query := `SELECT ` + coachRequestColumns + ` FROM become_coach_requests WHERE user_id = $1 AND is_approved IS NULL`
	var request models.BecomeCoachRequest
	if err := scanCoachRequest(r.db.QueryRow(ctx, query, userID), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *CoachRequestRepository) ListPending(ctx context.Context) ([]models.BecomeCoachRequest, error) {
	query := `SELECT ` + coachRequestColumns + ` FROM become_coach_requests WHERE is_approved IS NULL ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.BecomeCoachRequest, 0)
	for rows.Next() {
		var request models.BecomeCoachRequest
		if err := scanCoachRequest(rows, &request); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// Decide flips a still-pending request to its terminal state. Zero rows means
// the request was already decided or never existed.
func (r *CoachRequestRepository) Decide(ctx context.Context, userID int64, approved bool) (bool, error) {
	query := `
		UPDATE become_coach_requests
		SET is_approved = $2, updated_at = NOW()
		WHERE user_id = $1 AND is_approved IS NULL
	`
	tag, err := r.db.Exec(ctx, query, userID, approved)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
