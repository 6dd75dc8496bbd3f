package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = `id, name, description, muscle_group_id, equipment_id, is_active, created_at, updated_at`

func scanExercise(row pgx.Row, exercise *models.Exercise) error {
	return row.Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Description,
		&exercise.MuscleGroupID,
		&exercise.EquipmentID,
		&exercise.IsActive,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	)
}

type CreateExerciseInput struct {
	Name          string
	Description   string
	MuscleGroupID int64
	EquipmentID   int64
}

func (r *ExerciseRepository) Create(ctx context.Context, input CreateExerciseInput) (*models.Exercise, error) {
	query := `
		INSERT INTO exercise_bank (name, description, muscle_group_id, equipment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + exerciseColumns
	var exercise models.Exercise
	err := scanExercise(r.db.QueryRow(ctx, query,
		input.Name,
		input.Description,
		input.MuscleGroupID,
		input.EquipmentID,
	), &exercise)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercise_bank WHERE id = $1`
	var exercise models.Exercise
	if err := scanExercise(r.db.QueryRow(ctx, query, id), &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

type ExerciseSearchFilter struct {
	Name            string
	MuscleGroupID   *int64
	EquipmentID     *int64
	IncludeInactive bool
	Offset          int
	Limit           int
}

func (r *ExerciseRepository) Search(ctx context.Context, filter ExerciseSearchFilter) ([]models.ExerciseListItem, int, error) {
	conditions := []string{"1=1"}
	args := []any{}

	if !filter.IncludeInactive {
		conditions = append(conditions, "e.is_active = TRUE")
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("e.name ILIKE $%d", len(args)))
	}
	if filter.MuscleGroupID != nil {
		args = append(args, *filter.MuscleGroupID)
		conditions = append(conditions, fmt.Sprintf("e.muscle_group_id = $%d", len(args)))
	}
	if filter.EquipmentID != nil {
		args = append(args, *filter.EquipmentID)
		conditions = append(conditions, fmt.Sprintf("e.equipment_id = $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercise_bank e WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT e.id, e.name, e.description, e.muscle_group_id, e.equipment_id, e.is_active, e.created_at, e.updated_at,
			   mg.name, eq.name
		FROM exercise_bank e
		JOIN muscle_groups mg ON mg.id = e.muscle_group_id
		JOIN equipment eq ON eq.id = e.equipment_id
		WHERE %s
		ORDER BY e.name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	exercises := make([]models.ExerciseListItem, 0)
	for rows.Next() {
		var item models.ExerciseListItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.MuscleGroupID,
			&item.EquipmentID,
			&item.IsActive,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.MuscleGroup,
			&item.Equipment,
		); err != nil {
			return nil, 0, err
		}
		exercises = append(exercises, item)
	}
	return exercises, total, rows.Err()
}

func (r *ExerciseRepository) ListMuscleGroups(ctx context.Context) ([]models.MuscleGroup, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM muscle_groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]models.MuscleGroup, 0)
	for rows.Next() {
		var group models.MuscleGroup
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *ExerciseRepository) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM equipment ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Equipment, 0)
	for rows.Next() {
		var item models.Equipment
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Deactivate is a soft delete: plans referencing the exercise keep their
// rows, the catalog just stops offering it.
func (r *ExerciseRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE exercise_bank SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
