package models

import "time"

// BecomeCoachRequest is the intake record for the coach onboarding pipeline.
// IsApproved is tri-state: nil while pending, then terminally true or false.
type BecomeCoachRequest struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	GoalID     int64     `json:"goal_id"`
	Cost       float64   `json:"cost"`
	Experience int       `json:"experience"`
	Bio        string    `json:"bio"`
	IsApproved *bool     `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
