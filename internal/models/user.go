package models

import "time"

const (
	EngagementUnengaged = "unengaged"
	EngagementRequested = "requested"
	EngagementHired     = "hired"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Gender       *string    `json:"gender"`
	BirthDate    *time.Time `json:"birth_date"`
	GoalID       *int64     `json:"goal_id"`
	HasCoach     bool       `json:"has_coach"`
	HiredCoachID *int64     `json:"hired_coach_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EngagementState derives the coach relationship state from the has_coach
// flag and the hired_coach reference. A non-null reference without the flag
// means the request is still awaiting the coach's acceptance.
func (u *User) EngagementState() string {
	switch {
	case u.HasCoach && u.HiredCoachID != nil:
		return EngagementHired
	case u.HiredCoachID != nil:
		return EngagementRequested
	default:
		return EngagementUnengaged
	}
}
