package models

import "time"

type Exercise struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	MuscleGroupID int64     `json:"muscle_group_id"`
	EquipmentID   int64     `json:"equipment_id"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ExerciseListItem struct {
	Exercise
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
}

type MuscleGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Equipment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
