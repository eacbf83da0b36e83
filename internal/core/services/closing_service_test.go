package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/core/services"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClosingServiceTestSuite struct {
	suite.Suite
	mockClosingRepo *MockClosingRepository
	mockPeriodRepo  *MockPeriodRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ClosingSvcFacade

	exerciseID string
	userID     string
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewClosingService(suite.mockClosingRepo, suite.mockPeriodRepo, suite.mockAccountRepo)

	suite.exerciseID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func row(code string, accountType domain.AccountType, debit, credit int64) domain.TrialBalanceRow {
	return domain.TrialBalanceRow{
		AccountID:   uuid.NewString(),
		AccountCode: code,
		AccountType: accountType,
		TotalDebit:  decimal.NewFromInt(debit),
		TotalCredit: decimal.NewFromInt(credit),
	}
}

func (suite *ClosingServiceTestSuite) TestCloseExercise_Profit() {
	ctx := context.Background()
	suite.mockPeriodRepo.On("FindExerciseByID", ctx, suite.exerciseID).
		Return(&domain.Exercise{ExerciseID: suite.exerciseID, StartDate: time.Now()}, nil).Once()

	// Sales 10000 credit, purchases 6000 debit: profit of 4000. The
	// activity rows are handed to the line builder by the repository,
	// inside the closing transaction.
	rows := []domain.TrialBalanceRow{
		row("571", domain.Asset, 10000, 6000),
		row("601", domain.Expense, 6000, 0),
		row("701", domain.Income, 0, 10000),
	}

	resultAccount := &domain.Account{AccountID: uuid.NewString(), Code: accounting.CodeResult, AccountType: domain.Liability, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, accounting.CodeResult).Return(resultAccount, nil).Once()

	var capturedEntry domain.JournalEntry
	var capturedLines []domain.JournalEntryLine
	var capturedClosing domain.ExerciseClosing
	suite.mockClosingRepo.On("CloseExercise", ctx, suite.exerciseID, mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("repositories.ClosingLineBuilder")).
		Run(func(args mock.Arguments) {
			build := args.Get(3).(portsrepo.ClosingLineBuilder)
			var err error
			capturedEntry, capturedLines, capturedClosing, err = build(rows)
			suite.Require().NoError(err)
		}).
		Return(&domain.ExerciseClosing{ClosingID: uuid.NewString(), ExerciseID: suite.exerciseID}, nil).Once()

	created, err := suite.service.CloseExercise(ctx, suite.exerciseID, "fin d'annee", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.JournalClosing, capturedEntry.Journal)
	suite.True(capturedClosing.ResultAmount.Equal(decimal.NewFromInt(4000)))
	suite.Equal("fin d'annee", capturedClosing.Notes)

	// Expense credited closed, income debited closed, profit credited to 12.
	suite.Require().Len(capturedLines, 3)
	suite.True(capturedLines[0].Credit.Equal(decimal.NewFromInt(6000)))
	suite.True(capturedLines[1].Debit.Equal(decimal.NewFromInt(10000)))
	suite.Equal(resultAccount.AccountID, capturedLines[2].AccountID)
	suite.True(capturedLines[2].Credit.Equal(decimal.NewFromInt(4000)))

	debit, credit := domain.LineTotals(capturedLines)
	suite.True(debit.Equal(credit), "closing entry must balance: %s vs %s", debit, credit)

	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCloseExercise_Loss() {
	ctx := context.Background()
	suite.mockPeriodRepo.On("FindExerciseByID", ctx, suite.exerciseID).
		Return(&domain.Exercise{ExerciseID: suite.exerciseID, StartDate: time.Now()}, nil).Once()

	rows := []domain.TrialBalanceRow{
		row("601", domain.Expense, 9000, 0),
		row("701", domain.Income, 0, 7000),
	}

	resultAccount := &domain.Account{AccountID: uuid.NewString(), Code: accounting.CodeResult, AccountType: domain.Liability, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, accounting.CodeResult).Return(resultAccount, nil).Once()

	var capturedLines []domain.JournalEntryLine
	var capturedClosing domain.ExerciseClosing
	suite.mockClosingRepo.On("CloseExercise", ctx, suite.exerciseID, mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("repositories.ClosingLineBuilder")).
		Run(func(args mock.Arguments) {
			build := args.Get(3).(portsrepo.ClosingLineBuilder)
			var err error
			_, capturedLines, capturedClosing, err = build(rows)
			suite.Require().NoError(err)
		}).
		Return(&domain.ExerciseClosing{ClosingID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CloseExercise(ctx, suite.exerciseID, "", suite.userID)

	suite.Require().NoError(err)
	suite.True(capturedClosing.ResultAmount.Equal(decimal.NewFromInt(-2000)))

	// The loss is debited to the result account.
	suite.Require().Len(capturedLines, 3)
	suite.Equal(resultAccount.AccountID, capturedLines[2].AccountID)
	suite.True(capturedLines[2].Debit.Equal(decimal.NewFromInt(2000)))
}

func (suite *ClosingServiceTestSuite) TestCloseExercise_AlreadyClosed() {
	ctx := context.Background()
	end := time.Now()
	suite.mockPeriodRepo.On("FindExerciseByID", ctx, suite.exerciseID).
		Return(&domain.Exercise{ExerciseID: suite.exerciseID, EndDate: &end}, nil).Once()

	_, err := suite.service.CloseExercise(ctx, suite.exerciseID, "", suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "CloseExercise",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestCloseExercise_IdleExerciseHasNoEntry() {
	ctx := context.Background()
	suite.mockPeriodRepo.On("FindExerciseByID", ctx, suite.exerciseID).
		Return(&domain.Exercise{ExerciseID: suite.exerciseID, StartDate: time.Now()}, nil).Once()

	var capturedLines []domain.JournalEntryLine
	suite.mockClosingRepo.On("CloseExercise", ctx, suite.exerciseID, mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("repositories.ClosingLineBuilder")).
		Run(func(args mock.Arguments) {
			build := args.Get(3).(portsrepo.ClosingLineBuilder)
			var err error
			_, capturedLines, _, err = build([]domain.TrialBalanceRow{})
			suite.Require().NoError(err)
		}).
		Return(&domain.ExerciseClosing{ClosingID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CloseExercise(ctx, suite.exerciseID, "", suite.userID)

	suite.Require().NoError(err)
	suite.Empty(capturedLines)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestOpenNewExercise_CarriesBalancesAndRetainsProfit() {
	ctx := context.Background()
	closingID := uuid.NewString()
	closing := &domain.ExerciseClosing{
		ClosingID:    closingID,
		ExerciseID:   suite.exerciseID,
		ResultAmount: decimal.NewFromInt(4000),
	}
	suite.mockClosingRepo.On("FindClosingByID", ctx, closingID).Return(closing, nil).Once()

	// After closing: treasury 4000 debit, result 4000 credit, nominals zeroed.
	cashRow := row("571", domain.Asset, 10000, 6000)
	resultRow := row(accounting.CodeResult, domain.Liability, 0, 4000)
	salesRow := row("701", domain.Income, 10000, 10000)
	rows := []domain.TrialBalanceRow{cashRow, resultRow, salesRow}

	retained := &domain.Account{AccountID: uuid.NewString(), Code: accounting.CodeRetainedProfit, AccountType: domain.Liability, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, accounting.CodeRetainedProfit).Return(retained, nil).Once()

	var capturedExercise domain.Exercise
	var capturedEntry domain.JournalEntry
	var capturedLines []domain.JournalEntryLine
	suite.mockClosingRepo.On("OpenNewExercise", ctx, closingID, mock.AnythingOfType("domain.Exercise"),
		mock.AnythingOfType("repositories.OpeningLineBuilder")).
		Run(func(args mock.Arguments) {
			capturedExercise = args.Get(2).(domain.Exercise)
			build := args.Get(3).(portsrepo.OpeningLineBuilder)
			var err error
			capturedEntry, capturedLines, err = build(rows)
			suite.Require().NoError(err)
		}).
		Return(&domain.Exercise{ExerciseID: uuid.NewString(), StartDate: time.Now()}, nil).Once()

	opened, err := suite.service.OpenNewExercise(ctx, closingID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(opened)
	suite.Equal(domain.JournalOpening, capturedEntry.Journal)
	suite.Equal(capturedExercise.ExerciseID, capturedEntry.ExerciseID)

	// Cash carries forward as a debit; the result becomes retained profit.
	suite.Require().Len(capturedLines, 2)
	suite.Equal(cashRow.AccountID, capturedLines[0].AccountID)
	suite.True(capturedLines[0].Debit.Equal(decimal.NewFromInt(4000)))
	suite.Equal(retained.AccountID, capturedLines[1].AccountID)
	suite.True(capturedLines[1].Credit.Equal(decimal.NewFromInt(4000)))

	debit, credit := domain.LineTotals(capturedLines)
	suite.True(debit.Equal(credit), "opening entry must balance: %s vs %s", debit, credit)
}

func (suite *ClosingServiceTestSuite) TestOpenNewExercise_LossGoesToRetainedLoss() {
	ctx := context.Background()
	closingID := uuid.NewString()
	closing := &domain.ExerciseClosing{
		ClosingID:    closingID,
		ExerciseID:   suite.exerciseID,
		ResultAmount: decimal.NewFromInt(-2000),
	}
	suite.mockClosingRepo.On("FindClosingByID", ctx, closingID).Return(closing, nil).Once()

	resultRow := row(accounting.CodeResult, domain.Liability, 2000, 0)
	cashRow := row("571", domain.Asset, 0, 2000)
	rows := []domain.TrialBalanceRow{resultRow, cashRow}

	retained := &domain.Account{AccountID: uuid.NewString(), Code: accounting.CodeRetainedLoss, AccountType: domain.Asset, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, accounting.CodeRetainedLoss).Return(retained, nil).Once()

	var capturedLines []domain.JournalEntryLine
	suite.mockClosingRepo.On("OpenNewExercise", ctx, closingID, mock.AnythingOfType("domain.Exercise"),
		mock.AnythingOfType("repositories.OpeningLineBuilder")).
		Run(func(args mock.Arguments) {
			build := args.Get(3).(portsrepo.OpeningLineBuilder)
			var err error
			_, capturedLines, err = build(rows)
			suite.Require().NoError(err)
		}).
		Return(&domain.Exercise{ExerciseID: uuid.NewString()}, nil).Once()

	_, err := suite.service.OpenNewExercise(ctx, closingID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(capturedLines, 2)
	suite.Equal(retained.AccountID, capturedLines[0].AccountID)
	suite.True(capturedLines[0].Debit.Equal(decimal.NewFromInt(2000)))
}

func (suite *ClosingServiceTestSuite) TestOpenNewExercise_AlreadyOpened() {
	ctx := context.Background()
	closingID := uuid.NewString()
	newID := uuid.NewString()
	suite.mockClosingRepo.On("FindClosingByID", ctx, closingID).
		Return(&domain.ExerciseClosing{ClosingID: closingID, NewExerciseID: &newID}, nil).Once()

	_, err := suite.service.OpenNewExercise(ctx, closingID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
