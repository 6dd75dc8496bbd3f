package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
)

type surveyUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetGoal(ctx context.Context, userID int64, goalID *int64) error
}

type surveyGoalStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type surveyLogStore interface {
	Create(ctx context.Context, input repository.CreatePhysicalHealthLogInput) (*models.PhysicalHealthLog, error)
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
}

// SurveyService runs the one-shot initial survey: assign the user's goal and
// record the physical baseline. The gate makes it exactly-once per user; a
// failed baseline insert compensates by resetting the goal so the user can
// retry.
type SurveyService struct {
	userRepo surveyUserStore
	goalRepo surveyGoalStore
	logRepo  surveyLogStore
	now      func() time.Time
}

func NewSurveyService(userRepo surveyUserStore, goalRepo surveyGoalStore, logRepo surveyLogStore) *SurveyService {
	return &SurveyService{
		userRepo: userRepo,
		goalRepo: goalRepo,
		logRepo:  logRepo,
		now:      time.Now,
	}
}

type SurveyInput struct {
	UserID int64
	GoalID int64
	Weight float64
	Height float64
}

func (s *SurveyService) Complete(ctx context.Context, input SurveyInput) (*models.PhysicalHealthLog, error) {
	if input.UserID <= 0 || input.GoalID <= 0 || input.Weight <= 0 || input.Height <= 0 {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.GoalID != nil {
		return nil, ErrConflict
	}

	hasBaseline, err := s.logRepo.ExistsForUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if hasBaseline {
		return nil, ErrConflict
	}

	goalExists, err := s.goalRepo.Exists(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}
	if !goalExists {
		return nil, ErrGoalNotFound
	}

	if err := s.userRepo.SetGoal(ctx, input.UserID, &input.GoalID); err != nil {
		return nil, err
	}

	entry, err := s.logRepo.Create(ctx, repository.CreatePhysicalHealthLogInput{
		UserID:     input.UserID,
		Weight:     input.Weight,
		Height:     input.Height,
		RecordedAt: s.now().UTC(),
	})
	if err != nil {
		// Roll the goal back so a half-completed survey never blocks a retry.
		if resetErr := s.userRepo.SetGoal(ctx, input.UserID, nil); resetErr != nil {
			return nil, fmt.Errorf("%w: %v (goal rollback failed: %v)", ErrDownstream, err, resetErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}

	return entry, nil
}
