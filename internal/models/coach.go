package models

import "time"

type Coach struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	GoalID     int64     `json:"goal_id"`
	Bio        string    `json:"bio"`
	Cost       float64   `json:"cost"`
	Experience int       `json:"experience"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CoachListItem joins the owning user's identity and the goal name at read
// time; nothing is copied onto the coach row.
type CoachListItem struct {
	Coach
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Gender    *string `json:"gender"`
	GoalName  string  `json:"goal_name"`
}

type Goal struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
