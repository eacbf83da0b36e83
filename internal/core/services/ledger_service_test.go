package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/core/services"
	"github.com/shopledger/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade

	exerciseID  string
	userID      string
	cashAccount domain.Account
	salesAcct   domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockEntryRepo, suite.mockAccountRepo)

	suite.exerciseID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "571",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.salesAcct = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "701",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func (suite *LedgerServiceTestSuite) validRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        time.Now(),
		Description: "Encaissement divers",
		Journal:     domain.JournalMisc,
		ExerciseID:  suite.exerciseID,
		Lines: []dto.EntryLineRequest{
			{AccountCode: "571", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "701", Credit: decimal.NewFromInt(1000)},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.validRequest()

	accountsMap := map[string]domain.Account{
		"571": suite.cashAccount,
		"701": suite.salesAcct,
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{"571", "701"}).Return(accountsMap, nil).Once()

	var capturedEntry domain.JournalEntry
	suite.mockEntryRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Run(func(args mock.Arguments) {
			capturedEntry = args.Get(1).(domain.JournalEntry)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), Reference: "OD-20260115-001"}, nil).Once()

	created, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("OD-20260115-001", created.Reference)

	suite.True(capturedEntry.IsValidated)
	suite.Equal(suite.userID, capturedEntry.CreatedBy)
	suite.Require().Len(capturedEntry.Lines, 2)
	suite.Equal(suite.cashAccount.AccountID, capturedEntry.Lines[0].AccountID)
	suite.Equal(suite.salesAcct.AccountID, capturedEntry.Lines[1].AccountID)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Imbalance() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Lines[1].Credit = decimal.NewFromInt(900)

	accountsMap := map[string]domain.Account{
		"571": suite.cashAccount,
		"701": suite.salesAcct,
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{"571", "701"}).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImbalance)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_SingleLineRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_BothSidesSetRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Lines[0].Credit = decimal.NewFromInt(500)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NegativeAmountRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Lines[0].Debit = decimal.NewFromInt(-100)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.validRequest()

	// Only cash resolves; 701 is missing from the chart lookup.
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{"571", "701"}).
		Return(map[string]domain.Account{"571": suite.cashAccount}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.validRequest()

	inactive := suite.salesAcct
	inactive.IsActive = false
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{"571", "701"}).
		Return(map[string]domain.Account{"571": suite.cashAccount, "701": inactive}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_MissingExercise() {
	ctx := context.Background()
	req := suite.validRequest()
	req.ExerciseID = ""

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	want := &domain.JournalEntry{EntryID: entryID, Reference: "VE-20260110-003"}
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(want, nil).Once()

	got, err := suite.service.GetEntry(ctx, entryID)

	suite.NoError(err)
	suite.Equal(want, got)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
