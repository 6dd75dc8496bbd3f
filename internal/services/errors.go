package services

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
	ErrUserNotFound     = errors.New("user not found")
	ErrCoachNotFound    = errors.New("coach not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrRequestNotFound  = errors.New("coach request not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrCoachMismatch    = errors.New("coach does not match the outstanding request")

	// ErrDownstream marks a dependent write that failed after a prior step
	// succeeded; the triggering step has been compensated.
	ErrDownstream = errors.New("downstream write failed")
)
