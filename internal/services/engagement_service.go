package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type engagementUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	RequestCoach(ctx context.Context, userID, coachID int64) (bool, error)
	AcceptCoach(ctx context.Context, userID, coachID int64) (bool, error)
	ClearCoach(ctx context.Context, userID int64) (bool, error)
}

type engagementCoachStore interface {
	GetByID(ctx context.Context, id int64) (*models.Coach, error)
}

// EngagementService drives the user/coach relationship through its
// unengaged -> requested -> hired lifecycle. Every transition is a single
// guarded update, so concurrent calls race on the database row, not on a
// read-then-write window.
type EngagementService struct {
	userRepo  engagementUserStore
	coachRepo engagementCoachStore
}

func NewEngagementService(userRepo engagementUserStore, coachRepo engagementCoachStore) *EngagementService {
	return &EngagementService{userRepo: userRepo, coachRepo: coachRepo}
}

func (s *EngagementService) Request(ctx context.Context, userID, coachID int64) (*models.User, error) {
	if userID <= 0 || coachID <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.coachRepo.GetByID(ctx, coachID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}

	landed, err := s.userRepo.RequestCoach(ctx, userID, coachID)
	if err != nil {
		return nil, err
	}
	if !landed {
		// Classify: missing user or an engagement already in flight.
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		return nil, ErrConflict
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *EngagementService) Accept(ctx context.Context, userID, coachID int64) (*models.User, error) {
	if userID <= 0 || coachID <= 0 {
		return nil, ErrInvalidInput
	}

	landed, err := s.userRepo.AcceptCoach(ctx, userID, coachID)
	if err != nil {
		return nil, err
	}
	if !landed {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if user.HasCoach {
			return nil, ErrConflict
		}
		// Requested a different coach, or nothing requested at all.
		return nil, ErrCoachMismatch
	}

	return s.userRepo.GetByID(ctx, userID)
}

// Fire is tolerated from any state: it always leaves the user unengaged.
func (s *EngagementService) Fire(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}

	landed, err := s.userRepo.ClearCoach(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !landed {
		return nil, ErrUserNotFound
	}

	return s.userRepo.GetByID(ctx, userID)
}
