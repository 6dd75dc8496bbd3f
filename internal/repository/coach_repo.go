package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type CoachRepository struct {
	db DBTX
}

func NewCoachRepository(db DBTX) *CoachRepository {
	return &CoachRepository{db: db}
}

const coachColumns = `id, user_id, goal_id, bio, cost, experience, created_at, updated_at`

func scanCoach(row pgx.Row, coach *models.Coach) error {
	return row.Scan(
		&coach.ID,
		&coach.UserID,
		&coach.GoalID,
		&coach.Bio,
		&coach.Cost,
		&coach.Experience,
		&coach.CreatedAt,
		&coach.UpdatedAt,
	)
}

type CreateCoachInput struct {
	UserID     int64
	GoalID     int64
	Bio        string
	Cost       float64
	Experience int
}

func (r *CoachRepository) Create(ctx context.Context, input CreateCoachInput) (*models.Coach, error) {
	query := `
		INSERT INTO coaches (user_id, goal_id, bio, cost, experience)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + coachColumns
	var coach models.Coach
	err := scanCoach(r.db.QueryRow(ctx, query,
		input.UserID,
		input.GoalID,
		input.Bio,
		input.Cost,
		input.Experience,
	), &coach)
	if err != nil {
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) GetByID(ctx context.Context, id int64) (*models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE id = $1`
	var coach models.Coach
	if err := scanCoach(r.db.QueryRow(ctx, query, id), &coach); err != nil {
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) GetByUserID(ctx context.Context, userID int64) (*models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE user_id = $1`
	var coach models.Coach
	if err := scanCoach(r.db.QueryRow(ctx, query, userID), &coach); err != nil {
		return nil, err
	}
	return &coach, nil
}

type CoachListFilter struct {
	GoalID        *int64
	MinExperience *int
	MaxCost       *float64
	Offset        int
	Limit         int
}

// List applies the filters conjunctively and joins user identity and goal
// name at read time.
func (r *CoachRepository) List(ctx context.Context, filter CoachListFilter) ([]models.CoachListItem, int, error) {
	conditions := []string{"1=1"}
	args := []any{}

	if filter.GoalID != nil {
		args = append(args, *filter.GoalID)
		conditions = append(conditions, fmt.Sprintf("c.goal_id = $%d", len(args)))
	}
	if filter.MinExperience != nil {
		args = append(args, *filter.MinExperience)
		conditions = append(conditions, fmt.Sprintf("c.experience >= $%d", len(args)))
	}
	if filter.MaxCost != nil {
		args = append(args, *filter.MaxCost)
		conditions = append(conditions, fmt.Sprintf("c.cost <= $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM coaches c WHERE ` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	listQuery := fmt.Sprintf(`
		SELECT c.id, c.user_id, c.goal_id, c.bio, c.cost, c.experience, c.created_at, c.updated_at,
			   u.first_name, u.last_name, u.gender, g.name
		FROM coaches c
		JOIN users u ON u.id = c.user_id
		JOIN goals g ON g.id = c.goal_id
		WHERE %s
		ORDER BY c.id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	coaches := make([]models.CoachListItem, 0)
	for rows.Next() {
		var item models.CoachListItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.GoalID,
			&item.Bio,
			&item.Cost,
			&item.Experience,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.FirstName,
			&item.LastName,
			&item.Gender,
			&item.GoalName,
		); err != nil {
			return nil, 0, err
		}
		coaches = append(coaches, item)
	}
	return coaches, total, rows.Err()
}

type UpdateCoachInput struct {
	GoalID     *int64
	Bio        *string
	Cost       *float64
	Experience *int
}

func (r *CoachRepository) UpdatePartial(ctx context.Context, id int64, input UpdateCoachInput) (*models.Coach, error) {
	query := `
		UPDATE coaches
		SET goal_id = COALESCE($1, goal_id),
			bio = COALESCE($2, bio),
			cost = COALESCE($3, cost),
			experience = COALESCE($4, experience),
			updated_at = NOW()
		WHERE id = $5
		RETURNING ` + coachColumns
	var coach models.Coach
	err := scanCoach(r.db.QueryRow(ctx, query,
		input.GoalID,
		input.Bio,
		input.Cost,
		input.Experience,
		id,
	), &coach)
	if err != nil {
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
