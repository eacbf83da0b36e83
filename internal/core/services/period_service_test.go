package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPostingService stubs the posting facade for period tests.
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostSale(ctx context.Context, sale domain.SaleEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, sale, exerciseID, dailyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostSupply(ctx context.Context, supply domain.SupplyEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, supply, exerciseID, dailyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostExpense(ctx context.Context, expense domain.ExpenseEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, expense, exerciseID, dailyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostIncome(ctx context.Context, income domain.IncomeEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, income, exerciseID, dailyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostClientPayment(ctx context.Context, payment domain.ClientPaymentEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, payment, exerciseID, dailyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostSupplierPayment(ctx context.Context, payment domain.SupplierPaymentEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, payment, exerciseID, dailyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) RecordDeferredVATForDaily(ctx context.Context, dailyID string, exerciseID string, userID string) (int, error) {
	args := m.Called(ctx, dailyID, exerciseID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostingService) PendingAccounting(ctx context.Context) ([]domain.PendingSale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingSale), args.Error(1)
}

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockPosting    *MockPostingService
	service        portssvc.PeriodSvcFacade

	userID string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockPosting = new(MockPostingService)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockPosting)

	suite.userID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestGetOrCreateOpenDaily_ChainsThroughExercise() {
	ctx := context.Background()
	exercise := &domain.Exercise{ExerciseID: uuid.NewString(), StartDate: time.Now()}
	daily := &domain.Daily{DailyID: uuid.NewString(), ExerciseID: exercise.ExerciseID, StartDate: time.Now()}

	suite.mockPeriodRepo.On("GetOrCreateOpenExercise", ctx, suite.userID).Return(exercise, nil).Once()
	suite.mockPeriodRepo.On("GetOrCreateOpenDaily", ctx, exercise.ExerciseID, suite.userID).Return(daily, nil).Once()

	got, err := suite.service.GetOrCreateOpenDaily(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(daily, got)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCloseDaily_TriggersDeferredVAT() {
	ctx := context.Background()
	daily := &domain.Daily{DailyID: uuid.NewString(), ExerciseID: uuid.NewString(), StartDate: time.Now()}

	suite.mockPeriodRepo.On("FindDailyByID", ctx, daily.DailyID).Return(daily, nil).Once()
	suite.mockPeriodRepo.On("CloseDaily", ctx, daily.DailyID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockPosting.On("RecordDeferredVATForDaily", ctx, daily.DailyID, daily.ExerciseID, suite.userID).Return(3, nil).Once()

	count, err := suite.service.CloseDaily(ctx, daily.DailyID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(3, count)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCloseDaily_AlreadyClosed() {
	ctx := context.Background()
	end := time.Now()
	daily := &domain.Daily{DailyID: uuid.NewString(), ExerciseID: uuid.NewString(), EndDate: &end}

	suite.mockPeriodRepo.On("FindDailyByID", ctx, daily.DailyID).Return(daily, nil).Once()

	_, err := suite.service.CloseDaily(ctx, daily.DailyID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "CloseDaily", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCloseDaily_VATErrorSurfacesPartialCount() {
	ctx := context.Background()
	daily := &domain.Daily{DailyID: uuid.NewString(), ExerciseID: uuid.NewString(), StartDate: time.Now()}
	vatErr := errors.New("connection reset")

	suite.mockPeriodRepo.On("FindDailyByID", ctx, daily.DailyID).Return(daily, nil).Once()
	suite.mockPeriodRepo.On("CloseDaily", ctx, daily.DailyID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockPosting.On("RecordDeferredVATForDaily", ctx, daily.DailyID, daily.ExerciseID, suite.userID).Return(1, vatErr).Once()

	count, err := suite.service.CloseDaily(ctx, daily.DailyID, suite.userID)

	suite.ErrorIs(err, vatErr)
	suite.Equal(1, count)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
