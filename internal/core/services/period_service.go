package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
)

type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepository
	posting    portssvc.PostingSvcFacade
}

// NewPeriodService creates the exercise/daily session service.
func NewPeriodService(periodRepo portsrepo.PeriodRepository, posting portssvc.PostingSvcFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo, posting: posting}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// GetOrCreateOpenExercise returns the single open exercise.
func (s *periodService) GetOrCreateOpenExercise(ctx context.Context, userID string) (*domain.Exercise, error) {
	return s.periodRepo.GetOrCreateOpenExercise(ctx, userID)
}

// GetOrCreateOpenDaily returns the open daily of the open exercise,
// creating both when needed.
func (s *periodService) GetOrCreateOpenDaily(ctx context.Context, userID string) (*domain.Daily, error) {
	exercise, err := s.periodRepo.GetOrCreateOpenExercise(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.periodRepo.GetOrCreateOpenDaily(ctx, exercise.ExerciseID, userID)
}

// CloseDaily stamps the daily's end date, then posts the deferred VAT
// entries for its sales. Returns the number of VAT entries created.
func (s *periodService) CloseDaily(ctx context.Context, dailyID string, userID string) (int, error) {
	daily, err := s.periodRepo.FindDailyByID(ctx, dailyID)
	if err != nil {
		return 0, err
	}
	if !daily.IsOpen() {
		return 0, fmt.Errorf("%w: daily %s is already closed", apperrors.ErrConflict, dailyID)
	}

	if err := s.periodRepo.CloseDaily(ctx, dailyID, time.Now(), userID); err != nil {
		return 0, err
	}
	s.LogInfo(ctx, "daily closed", "dailyID", dailyID)

	created, err := s.posting.RecordDeferredVATForDaily(ctx, dailyID, daily.ExerciseID, userID)
	if err != nil {
		// The daily stays closed; the per-sale flags let a retry pick up
		// where this run stopped.
		s.LogError(ctx, err, "deferred VAT incomplete after daily close", "dailyID", dailyID)
		return created, err
	}
	return created, nil
}
