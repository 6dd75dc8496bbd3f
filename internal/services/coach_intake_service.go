package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
)

type intakeRequestStore interface {
	Create(ctx context.Context, input repository.CreateCoachRequestInput) (*models.BecomeCoachRequest, error)
	GetPendingByUserID(ctx context.Context, userID int64) (*models.BecomeCoachRequest, error)
	ListPending(ctx context.Context) ([]models.BecomeCoachRequest, error)
	Decide(ctx context.Context, userID int64, approved bool) (bool, error)
}

type intakeCoachStore interface {
	Create(ctx context.Context, input repository.CreateCoachInput) (*models.Coach, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Coach, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type intakeUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type intakeGoalStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CoachIntakeService covers the become-a-coach pipeline: intake of a
// proposal, the pending queue, and the terminal approve/deny decision.
type CoachIntakeService struct {
	requestRepo intakeRequestStore
	coachRepo   intakeCoachStore
	userRepo    intakeUserStore
	goalRepo    intakeGoalStore
}

func NewCoachIntakeService(
	requestRepo intakeRequestStore,
	coachRepo intakeCoachStore,
	userRepo intakeUserStore,
	goalRepo intakeGoalStore,
) *CoachIntakeService {
	return &CoachIntakeService{
		requestRepo: requestRepo,
		coachRepo:   coachRepo,
		userRepo:    userRepo,
		goalRepo:    goalRepo,
	}
}

type CoachIntakeInput struct {
	UserID     int64
	GoalID     int64
	Cost       float64
	Experience int
	Bio        string
}

func (s *CoachIntakeService) Submit(ctx context.Context, input CoachIntakeInput) (*models.BecomeCoachRequest, error) {
	if input.UserID <= 0 || input.GoalID <= 0 || input.Cost < 0 || input.Experience < 0 ||
		strings.TrimSpace(input.Bio) == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	goalExists, err := s.goalRepo.Exists(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}
	if !goalExists {
		return nil, ErrGoalNotFound
	}

	if _, err := s.coachRepo.GetByUserID(ctx, input.UserID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	request, err := s.requestRepo.Create(ctx, repository.CreateCoachRequestInput{
		UserID:     input.UserID,
		GoalID:     input.GoalID,
		Cost:       input.Cost,
		Experience: input.Experience,
		Bio:        strings.TrimSpace(input.Bio),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}
	return request, nil
}

func (s *CoachIntakeService) ListPending(ctx context.Context) ([]models.BecomeCoachRequest, error) {
	return s.requestRepo.ListPending(ctx)
}

// Decide finalizes a pending request. Approval copies the proposed fields
// onto a new coach row before the terminal flip; if the flip cannot land the
// coach row is removed again so the decision stays all-or-nothing.
func (s *CoachIntakeService) Decide(ctx context.Context, userID int64, approve bool) (*models.Coach, error) {
	request, err := s.requestRepo.GetPendingByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if !approve {
		decided, err := s.requestRepo.Decide(ctx, userID, false)
		if err != nil {
			return nil, err
		}
		if !decided {
			return nil, ErrConflict
		}
		return nil, nil
	}

	coach, err := s.coachRepo.Create(ctx, repository.CreateCoachInput{
		UserID:     request.UserID,
		GoalID:     request.GoalID,
		Bio:        request.Bio,
		Cost:       request.Cost,
		Experience: request.Experience,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}

	decided, err := s.requestRepo.Decide(ctx, userID, true)
	if err != nil || !decided {
		if _, deleteErr := s.coachRepo.Delete(ctx, coach.ID); deleteErr != nil {
			return nil, fmt.Errorf("%w: %v (coach cleanup failed: %v)", ErrDownstream, err, deleteErr)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
		}
		return nil, ErrConflict
	}

	return coach, nil
}
