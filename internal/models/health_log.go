package models

import "time"

type PhysicalHealthLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Weight     float64   `json:"weight"`
	Height     float64   `json:"height"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CalorieLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Calories   int       `json:"calories"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type WaterLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	AmountML   int       `json:"amount_ml"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MentalHealthLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Mood       int       `json:"mood"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
