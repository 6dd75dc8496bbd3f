package handlers

import (
	"net/mail"
	"strings"
	"unicode"
)

// fieldErrors collects every invalid field of a request so callers see the
// full set in one response instead of one failure at a time.
type fieldErrors map[string]string

var allowedGenders = map[string]struct{}{
	"male":              {},
	"female":            {},
	"other":             {},
	"prefer_not_to_say": {},
}

// validatePassword enforces the signup policy: at least 7 characters with a
// letter, a digit and a special character.
func validatePassword(password string) string {
	if len(password) < 7 {
		return "password must be 7 characters or more"
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasLetter || !hasDigit || !hasSpecial {
		return "password must contain at least one letter, one number and one special character"
	}
	return ""
}

func validateRegisterRequest(req registerRequest) fieldErrors {
	errs := fieldErrors{}

	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		errs["email"] = "enter a valid email address"
	}
	if msg := validatePassword(req.Password); msg != "" {
		errs["password"] = msg
	}
	if strings.TrimSpace(req.FirstName) == "" {
		errs["first_name"] = "first_name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs["last_name"] = "last_name is required"
	}
	if req.Gender != nil {
		if _, ok := allowedGenders[strings.TrimSpace(*req.Gender)]; !ok {
			errs["gender"] = "gender must be one of: male, female, other, prefer_not_to_say"
		}
	}
	return errs
}

func validateUpdateProfileRequest(req updateProfileRequest) fieldErrors {
	errs := fieldErrors{}

	if req.FirstName == nil && req.LastName == nil && req.Gender == nil && req.BirthDate == nil {
		errs["body"] = "provide at least one field to update"
		return errs
	}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		errs["first_name"] = "first_name must not be empty"
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		errs["last_name"] = "last_name must not be empty"
	}
	if req.Gender != nil {
		if _, ok := allowedGenders[strings.TrimSpace(*req.Gender)]; !ok {
			errs["gender"] = "gender must be one of: male, female, other, prefer_not_to_say"
		}
	}
	return errs
}

func validateSurveyRequest(req initialSurveyRequest) fieldErrors {
	errs := fieldErrors{}

	if req.GoalID <= 0 {
		errs["goal_id"] = "goal_id is required"
	}
	if req.Weight <= 0 {
		errs["weight"] = "weight must be greater than 0"
	}
	if req.Height <= 0 {
		errs["height"] = "height must be greater than 0"
	}
	return errs
}

func validateCoachIntakeRequest(req becomeCoachRequest) fieldErrors {
	errs := fieldErrors{}

	if req.GoalID <= 0 {
		errs["goal_id"] = "goal_id is required"
	}
	if req.Cost < 0 {
		errs["cost"] = "cost must be 0 or greater"
	}
	if req.Experience < 0 {
		errs["experience"] = "experience must be 0 or greater"
	}
	if strings.TrimSpace(req.Bio) == "" {
		errs["bio"] = "bio is required"
	}
	return errs
}

func validateUpdateCoachRequest(req updateCoachRequest) fieldErrors {
	errs := fieldErrors{}

	if req.GoalID != nil && *req.GoalID <= 0 {
		errs["goal_id"] = "goal_id must be a valid goal"
	}
	if req.Cost != nil && *req.Cost < 0 {
		errs["cost"] = "cost must be 0 or greater"
	}
	if req.Experience != nil && *req.Experience < 0 {
		errs["experience"] = "experience must be 0 or greater"
	}
	if req.Bio != nil && strings.TrimSpace(*req.Bio) == "" {
		errs["bio"] = "bio must not be empty"
	}
	return errs
}

func validateWorkoutPlanRequest(req createWorkoutPlanRequest) fieldErrors {
	errs := fieldErrors{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "name is required"
	}
	if len(req.Exercises) == 0 {
		errs["exercises"] = "exercises must contain at least one entry"
	}
	for _, entry := range req.Exercises {
		if entry.ExerciseID <= 0 {
			errs["exercises"] = "every entry needs a valid exercise_id"
			break
		}
		if entry.Sets <= 0 {
			errs["exercises"] = "sets must be greater than 0"
			break
		}
		if entry.Reps < 0 {
			errs["exercises"] = "reps must be 0 or greater"
			break
		}
		if entry.Weight != nil && *entry.Weight < 0 {
			errs["exercises"] = "weight must be 0 or greater"
			break
		}
		if entry.DurationMinutes != nil && *entry.DurationMinutes <= 0 {
			errs["exercises"] = "duration_minutes must be greater than 0"
			break
		}
	}
	return errs
}

func validateCreateExerciseRequest(req createExerciseRequest) fieldErrors {
	errs := fieldErrors{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "name is required"
	}
	if req.MuscleGroupID <= 0 {
		errs["muscle_group_id"] = "muscle_group_id is required"
	}
	if req.EquipmentID <= 0 {
		errs["equipment_id"] = "equipment_id is required"
	}
	return errs
}
