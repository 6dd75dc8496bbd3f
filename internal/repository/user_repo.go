package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, gender, birth_date, goal_id, has_coach, hired_coach_id, created_at, updated_at`

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Gender,
		&user.BirthDate,
		&user.GoalID,
		&user.HasCoach,
		&user.HiredCoachID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name, gender, birth_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Gender,
		user.BirthDate,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Gender    *string
	BirthDate *time.Time
}

func (r *UserRepository) UpdatePartial(ctx context.Context, id int64, input UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			gender = COALESCE($3, gender),
			birth_date = COALESCE($4, birth_date),
			updated_at = NOW()
		WHERE id = $5
		RETURNING ` + userColumns
	var user models.User
	err := scanUser(r.db.QueryRow(ctx, query,
		input.FirstName,
		input.LastName,
		input.Gender,
		input.BirthDate,
		id,
	), &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetGoal writes the goal reference; a nil goalID clears it, which is the
// compensation path of the initial survey.
func (r *UserRepository) SetGoal(ctx context.Context, userID int64, goalID *int64) error {
	query := `UPDATE users SET goal_id = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, userID, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RequestCoach is a single guarded statement: it only lands when the user has
// no coach and no outstanding request, so two concurrent requests cannot both
// succeed.
func (r *UserRepository) RequestCoach(ctx context.Context, userID, coachID int64) (bool, error) {
	query := `
		UPDATE users
		SET hired_coach_id = $2, updated_at = NOW()
		WHERE id = $1 AND has_coach = FALSE AND hired_coach_id IS NULL
	`
	tag, err := r.db.Exec(ctx, query, userID, coachID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AcceptCoach flips has_coach only when the outstanding request names the
// accepting coach.
func (r *UserRepository) AcceptCoach(ctx context.Context, userID, coachID int64) (bool, error) {
	query := `
		UPDATE users
		SET has_coach = TRUE, updated_at = NOW()
		WHERE id = $1 AND has_coach = FALSE AND hired_coach_id = $2
	`
	tag, err := r.db.Exec(ctx, query, userID, coachID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ClearCoach resets the engagement regardless of its current state.
func (r *UserRepository) ClearCoach(ctx context.Context, userID int64) (bool, error) {
	query := `
		UPDATE users
		SET has_coach = FALSE, hired_coach_id = NULL, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) ListClientsOfCoach(ctx context.Context, coachID int64, hired bool) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE hired_coach_id = $1 AND has_coach = $2 ORDER BY id`
	rows, err := r.db.Query(ctx, query, coachID, hired)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
