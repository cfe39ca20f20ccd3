package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/GerardFevill/trade-vision/internal/core/services"
	"github.com/GerardFevill/trade-vision/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MonthlyServiceTestSuite struct {
	suite.Suite
	mockPortfolios *MockPortfolioRepository
	mockMonthly    *MockMonthlyRepository
	mockCache      *MockAccountCacheRepository
	mockHistory    *MockBalanceHistoryRepository
	mockBridge     *MockTerminalBridge
	service        portssvc.MonthlySvcFacade

	now   time.Time
	month domain.MonthKey
}

func (suite *MonthlyServiceTestSuite) SetupTest() {
	suite.mockPortfolios = new(MockPortfolioRepository)
	suite.mockMonthly = new(MockMonthlyRepository)
	suite.mockCache = new(MockAccountCacheRepository)
	suite.mockHistory = new(MockBalanceHistoryRepository)
	suite.mockBridge = new(MockTerminalBridge)
	suite.now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	suite.month = domain.MonthKey("2025-03")
	suite.service = services.NewMonthlyService(
		suite.mockPortfolios,
		suite.mockMonthly,
		suite.mockCache,
		suite.mockHistory,
		services.WithMonthlyClock(func() time.Time { return suite.now }),
		services.WithTerminalBridge(suite.mockBridge),
	)
}

func (suite *MonthlyServiceTestSuite) TestCurrentMonthPreview_RecordOverridesHistory() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockPortfolios.On("FindPortfolioAccounts", ctx, portfolioID).Return([]domain.PortfolioAccount{
		{PortfolioID: portfolioID, AccountID: 101, LotFactor: 2.0},
	}, nil).Once()
	suite.mockCache.On("FindAccountSummariesByIDs", ctx, []int64{101}).Return(map[int64]domain.AccountSummary{
		101: {AccountID: 101, Name: "Alpha", Currency: "USD", Balance: decimal.NewFromInt(11000)},
	}, nil).Once()
	// No dangling previous month.
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, domain.MonthKey("2025-02")).Return([]domain.MonthlyAccountRecord{}, nil).Once()
	// A stored record carries a manual override of 9000; the history point
	// of 10000 must lose to it.
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, suite.month).Return([]domain.MonthlyAccountRecord{
		{PortfolioID: portfolioID, AccountID: 101, Month: suite.month, StartingBalance: decimal.NewFromInt(9000)},
	}, nil).Once()
	suite.mockHistory.On("BalancesAtMonthStart", ctx, []int64{101}, suite.month).Return(map[int64]domain.BalancePoint{
		101: {AccountID: 101, Balance: decimal.NewFromInt(10000)},
	}, nil).Once()

	preview, err := suite.service.CurrentMonthPreview(ctx, portfolioID)

	suite.Require().NoError(err)
	suite.Equal(suite.month, preview.Month)
	suite.False(preview.IsElite)
	suite.True(preview.TotalStarting.Equal(decimal.NewFromInt(9000)))
	suite.True(preview.TotalProfit.Equal(decimal.NewFromInt(2000)))
	// Modere suggests 80% of the profit.
	suite.True(preview.TotalSuggestedWithdrawal.Equal(decimal.NewFromInt(1600)))
}

func (suite *MonthlyServiceTestSuite) TestCurrentMonthPreview_HistoryFallback() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Agressif}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockPortfolios.On("FindPortfolioAccounts", ctx, portfolioID).Return([]domain.PortfolioAccount{
		{PortfolioID: portfolioID, AccountID: 101, LotFactor: 2.5},
	}, nil).Once()
	suite.mockCache.On("FindAccountSummariesByIDs", ctx, []int64{101}).Return(map[int64]domain.AccountSummary{
		101: {AccountID: 101, Currency: "USD", Balance: decimal.NewFromInt(10500)},
	}, nil).Once()
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, domain.MonthKey("2025-02")).Return([]domain.MonthlyAccountRecord{}, nil).Once()
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, suite.month).Return([]domain.MonthlyAccountRecord{}, nil).Once()
	suite.mockHistory.On("BalancesAtMonthStart", ctx, []int64{101}, suite.month).Return(map[int64]domain.BalancePoint{
		101: {AccountID: 101, Balance: decimal.NewFromInt(10000)},
	}, nil).Once()

	preview, err := suite.service.CurrentMonthPreview(ctx, portfolioID)

	suite.Require().NoError(err)
	suite.True(preview.TotalStarting.Equal(decimal.NewFromInt(10000)))
	suite.True(preview.TotalProfit.Equal(decimal.NewFromInt(500)))
}

func (suite *MonthlyServiceTestSuite) TestCurrentMonthPreview_AutoClosesDanglingMonth() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}
	prev := domain.MonthKey("2025-02")

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()

	// February was opened but never closed. Its closing balance comes from
	// the history point at the start of March.
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, prev).Return([]domain.MonthlyAccountRecord{
		{PortfolioID: portfolioID, AccountID: 101, AccountName: "Alpha", Month: prev,
			LotFactor: 2.0, StartingBalance: decimal.NewFromInt(8000), Currency: "USD"},
	}, nil).Once()
	suite.mockHistory.On("BalancesAtMonthStart", ctx, []int64{101}, suite.month).Return(map[int64]domain.BalancePoint{
		101: {AccountID: 101, Balance: decimal.NewFromInt(9000)},
	}, nil).Once()
	suite.mockMonthly.On("CloseMonth", ctx, portfolioID, prev, mock.MatchedBy(func(records []domain.MonthlyAccountRecord) bool {
		return len(records) == 1 &&
			records[0].IsClosed &&
			records[0].EndingBalance.Equal(decimal.NewFromInt(9000)) &&
			records[0].Profit.Equal(decimal.NewFromInt(1000))
	})).Return(nil).Once()

	// Preview of the current month proceeds afterwards.
	suite.mockPortfolios.On("FindPortfolioAccounts", ctx, portfolioID).Return([]domain.PortfolioAccount{
		{PortfolioID: portfolioID, AccountID: 101, LotFactor: 2.0},
	}, nil).Once()
	suite.mockCache.On("FindAccountSummariesByIDs", ctx, []int64{101}).Return(map[int64]domain.AccountSummary{
		101: {AccountID: 101, Name: "Alpha", Currency: "USD", Balance: decimal.NewFromInt(9500)},
	}, nil).Once()
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, suite.month).Return([]domain.MonthlyAccountRecord{
		{PortfolioID: portfolioID, AccountID: 101, Month: suite.month, StartingBalance: decimal.NewFromInt(9000)},
	}, nil).Once()
	suite.mockHistory.On("BalancesAtMonthStart", ctx, []int64{101}, suite.month).Return(map[int64]domain.BalancePoint{}, nil).Once()

	preview, err := suite.service.CurrentMonthPreview(ctx, portfolioID)

	suite.Require().NoError(err)
	suite.True(preview.TotalProfit.Equal(decimal.NewFromInt(500)))
	suite.mockMonthly.AssertExpectations(suite.T())
}

func (suite *MonthlyServiceTestSuite) TestUpdateWithdrawals_RejectedWhenClosed() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}
	month := domain.MonthKey("2025-02")

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, month).Return(true, nil).Once()

	updated, err := suite.service.UpdateWithdrawals(ctx, portfolioID, month, dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalUpdate{{AccountID: 101, Withdrawal: decimal.NewFromInt(500)}},
	})

	suite.Require().Error(err)
	suite.Zero(updated)
	suite.ErrorIs(err, apperrors.ErrMonthClosed)
	suite.mockMonthly.AssertNotCalled(suite.T(), "UpdateWithdrawal",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MonthlyServiceTestSuite) TestUpdateWithdrawals_AppliesEachOverride() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}
	note := "partiel"

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, suite.month).Return(false, nil).Once()
	suite.mockMonthly.On("UpdateWithdrawal", ctx, portfolioID, suite.month, int64(101), decimal.NewFromInt(500), &note).Return(nil).Once()
	suite.mockMonthly.On("UpdateWithdrawal", ctx, portfolioID, suite.month, int64(102), decimal.NewFromInt(200), (*string)(nil)).Return(nil).Once()

	updated, err := suite.service.UpdateWithdrawals(ctx, portfolioID, suite.month, dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalUpdate{
			{AccountID: 101, Withdrawal: decimal.NewFromInt(500), Note: &note},
			{AccountID: 102, Withdrawal: decimal.NewFromInt(200)},
		},
	})

	suite.Require().NoError(err)
	suite.Equal(2, updated)
	suite.mockMonthly.AssertExpectations(suite.T())
}

func (suite *MonthlyServiceTestSuite) TestUpdateStartingBalance_RejectedWhenClosed() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, suite.month).Return(true, nil).Once()

	err := suite.service.UpdateStartingBalance(ctx, portfolioID, 101, decimal.NewFromInt(9500))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMonthClosed)
	suite.mockMonthly.AssertNotCalled(suite.T(), "UpsertStartingBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MonthlyServiceTestSuite) TestCloseCurrentMonth_Standard() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}
	nextMonth := domain.MonthKey("2025-04")

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, suite.month).Return(false, nil).Once()
	suite.mockPortfolios.On("FindPortfolioAccounts", ctx, portfolioID).Return([]domain.PortfolioAccount{
		{PortfolioID: portfolioID, AccountID: 101, LotFactor: 2.0},
	}, nil).Once()
	suite.mockCache.On("FindAccountSummariesByIDs", ctx, []int64{101}).Return(map[int64]domain.AccountSummary{
		101: {AccountID: 101, Name: "Alpha", Currency: "USD", Balance: decimal.NewFromInt(11000)},
	}, nil).Once()
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, suite.month).Return([]domain.MonthlyAccountRecord{
		{
			PortfolioID:      portfolioID,
			AccountID:        101,
			Month:            suite.month,
			StartingBalance:  decimal.NewFromInt(10000),
			ActualWithdrawal: decimal.NewFromInt(300),
			Note:             "retrait partiel",
		},
	}, nil).Once()
	suite.mockHistory.On("BalancesAtMonthStart", ctx, []int64{101}, suite.month).Return(map[int64]domain.BalancePoint{}, nil).Once()

	suite.mockMonthly.On("CloseMonth", ctx, portfolioID, suite.month, mock.MatchedBy(func(records []domain.MonthlyAccountRecord) bool {
		if len(records) != 1 {
			return false
		}
		r := records[0]
		return r.IsClosed &&
			r.Profit.Equal(decimal.NewFromInt(1000)) &&
			r.SuggestedWithdrawal.Equal(decimal.NewFromInt(800)) &&
			r.ActualWithdrawal.Equal(decimal.NewFromInt(300)) &&
			r.Note == "retrait partiel"
	})).Return(nil).Once()

	// The next month opens seeded with the balances just frozen as ending.
	suite.mockMonthly.On("OpenMonth", ctx, portfolioID, nextMonth, mock.MatchedBy(func(records []domain.MonthlyAccountRecord) bool {
		return len(records) == 1 &&
			records[0].Month == nextMonth &&
			records[0].StartingBalance.Equal(decimal.NewFromInt(11000))
	})).Return(nil).Once()

	result, err := suite.service.CloseCurrentMonth(ctx, portfolioID)

	suite.Require().NoError(err)
	suite.Equal(suite.month, result.Month)
	suite.Equal(1, result.AccountsClosed)
	suite.False(result.IsElite)
	suite.mockMonthly.AssertExpectations(suite.T())
}

func (suite *MonthlyServiceTestSuite) TestCloseCurrentMonth_AlreadyClosed() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, suite.month).Return(true, nil).Once()

	result, err := suite.service.CloseCurrentMonth(ctx, portfolioID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrMonthClosed)
	suite.mockMonthly.AssertNotCalled(suite.T(), "CloseMonth",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MonthlyServiceTestSuite) TestCloseMonth_WrongMonthRejected() {
	ctx := context.Background()
	portfolioID := uuid.NewString()

	result, err := suite.service.CloseMonth(ctx, portfolioID, domain.MonthKey("2025-01"))

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMonthly.AssertNotCalled(suite.T(), "CloseMonth",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MonthlyServiceTestSuite) TestCloseMonth_CurrentMonthDelegates() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, suite.month).Return(true, nil).Once()

	result, err := suite.service.CloseMonth(ctx, portfolioID, suite.month)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrMonthClosed)
}

func (suite *MonthlyServiceTestSuite) TestCloseCurrentMonth_Elite() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Conservateur}
	nextMonth := domain.MonthKey("2025-04")

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, suite.month).Return(false, nil).Once()
	suite.mockPortfolios.On("FindPortfolioAccounts", ctx, portfolioID).Return([]domain.PortfolioAccount{
		{PortfolioID: portfolioID, AccountID: 101, LotFactor: 1.8},
	}, nil).Once()
	suite.mockCache.On("FindAccountSummariesByIDs", ctx, []int64{101}).Return(map[int64]domain.AccountSummary{
		101: {AccountID: 101, Name: "Alpha", Currency: "USD", Balance: decimal.NewFromInt(11000)},
	}, nil).Once()
	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, suite.month).Return([]domain.MonthlyAccountRecord{
		{PortfolioID: portfolioID, AccountID: 101, Month: suite.month, StartingBalance: decimal.NewFromInt(10000)},
	}, nil).Once()
	suite.mockHistory.On("BalancesAtMonthStart", ctx, []int64{101}, suite.month).Return(map[int64]domain.BalancePoint{}, nil).Once()

	suite.mockMonthly.On("CloseEliteMonth", ctx, portfolioID, suite.month,
		mock.MatchedBy(func(records []domain.EliteAccountRecord) bool {
			if len(records) != 1 {
				return false
			}
			r := records[0]
			split := r.Remuneration.Add(r.Compound).Add(r.Transfer)
			return r.IsClosed && r.Month == suite.month &&
				r.Level == domain.LevelN5 &&
				split.Equal(r.MonthlyProfit)
		}),
		mock.AnythingOfType("[]domain.EliteTransfer"),
	).Return(nil).Once()
	suite.mockMonthly.On("OpenMonth", ctx, portfolioID, nextMonth, mock.AnythingOfType("[]domain.MonthlyAccountRecord")).Return(nil).Once()

	result, err := suite.service.CloseCurrentMonth(ctx, portfolioID)

	suite.Require().NoError(err)
	suite.True(result.IsElite)
	// 11000 of capital sits in phase 2.
	suite.Equal(2, result.Phase)
	suite.Equal("Fondation", result.PhaseName)
	suite.mockMonthly.AssertExpectations(suite.T())
}

func (suite *MonthlyServiceTestSuite) TestSnapshot_AggregatesStoredRecords() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	month := domain.MonthKey("2025-02")

	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, month).Return([]domain.MonthlyAccountRecord{
		{
			AccountID:        101,
			StartingBalance:  decimal.NewFromInt(10000),
			EndingBalance:    decimal.NewFromInt(11000),
			Profit:           decimal.NewFromInt(1000),
			ActualWithdrawal: decimal.NewFromInt(800),
			IsClosed:         true,
		},
		{
			AccountID:        102,
			StartingBalance:  decimal.NewFromInt(5000),
			EndingBalance:    decimal.NewFromInt(5500),
			Profit:           decimal.NewFromInt(500),
			ActualWithdrawal: decimal.NewFromInt(0),
			IsClosed:         true,
		},
	}, nil).Once()

	snapshot, err := suite.service.Snapshot(ctx, portfolioID, month)

	suite.Require().NoError(err)
	suite.True(snapshot.IsClosed)
	suite.True(snapshot.TotalStarting.Equal(decimal.NewFromInt(15000)))
	suite.True(snapshot.TotalEnding.Equal(decimal.NewFromInt(16500)))
	suite.True(snapshot.TotalProfit.Equal(decimal.NewFromInt(1500)))
	suite.True(snapshot.TotalWithdrawal.Equal(decimal.NewFromInt(800)))
	suite.True(snapshot.TotalProfitPercent.Equal(decimal.NewFromInt(10)))
}

func (suite *MonthlyServiceTestSuite) TestSnapshot_EmptyMonthIsNotFound() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	month := domain.MonthKey("2020-01")

	suite.mockMonthly.On("FindMonthlyRecords", ctx, portfolioID, month).Return([]domain.MonthlyAccountRecord{}, nil).Once()

	snapshot, err := suite.service.Snapshot(ctx, portfolioID, month)

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MonthlyServiceTestSuite) TestSnapshot_InvalidMonth() {
	ctx := context.Background()

	snapshot, err := suite.service.Snapshot(ctx, uuid.NewString(), domain.MonthKey("2025-3"))

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MonthlyServiceTestSuite) TestEliteSnapshot_RejectedForStandardType() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Agressif}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()

	snapshot, err := suite.service.EliteSnapshot(ctx, portfolioID, domain.MonthKey("2025-02"))

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MonthlyServiceTestSuite) TestEliteSnapshot_AggregatesStoredRecords() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Conservateur}
	month := domain.MonthKey("2025-02")

	records := []domain.EliteAccountRecord{
		{
			AccountID:       101,
			AccountName:     "Main Account",
			Month:           month,
			Level:           domain.LevelN5,
			StartingBalance: decimal.NewFromInt(10000),
			EndingBalance:   decimal.NewFromInt(10400),
			MonthlyProfit:   decimal.NewFromInt(400),
			Remuneration:    decimal.NewFromInt(100),
			Compound:        decimal.NewFromInt(250),
			Transfer:        decimal.NewFromInt(50),
			Currency:        "EUR",
			IsClosed:        true,
		},
		{
			AccountID:       102,
			AccountName:     "Reserve",
			Month:           month,
			Level:           domain.LevelN3,
			StartingBalance: decimal.NewFromInt(5000),
			EndingBalance:   decimal.NewFromInt(5100),
			MonthlyProfit:   decimal.NewFromInt(100),
			Compound:        decimal.NewFromInt(100),
			Currency:        "EUR",
			IsClosed:        true,
		},
	}
	transfers := []domain.EliteTransfer{
		{
			FromLevel:   domain.LevelN5,
			ToLevel:     domain.LevelN3,
			Amount:      decimal.NewFromFloat(50.005),
			FromAccount: "Main Account",
			ToAccount:   "Reserve",
		},
	}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("FindEliteRecords", ctx, portfolioID, month).Return(records, nil).Once()
	suite.mockMonthly.On("FindEliteTransfers", ctx, portfolioID, month).Return(transfers, nil).Once()

	snapshot, err := suite.service.EliteSnapshot(ctx, portfolioID, month)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.True(snapshot.IsClosed)
	suite.True(snapshot.TotalStarting.Equal(decimal.NewFromInt(15000)))
	suite.True(snapshot.TotalEnding.Equal(decimal.NewFromInt(15500)))
	suite.True(snapshot.TotalProfit.Equal(decimal.NewFromInt(500)))
	suite.True(snapshot.TotalRemuneration.Equal(decimal.NewFromInt(100)))
	suite.True(snapshot.TotalCompound.Equal(decimal.NewFromInt(350)))
	suite.True(snapshot.TotalTransfer.Equal(decimal.NewFromInt(50)))

	suite.Require().Len(snapshot.Transfers, 1)
	transfer := snapshot.Transfers[0]
	suite.Equal(domain.LevelN5, transfer.FromLevel)
	suite.Equal(domain.LevelN3, transfer.ToLevel)
	suite.Equal("Main Account", transfer.FromAccount)
	suite.Equal("Reserve", transfer.ToAccount)
	suite.True(transfer.Amount.Equal(decimal.NewFromInt(50)))
}

func (suite *MonthlyServiceTestSuite) TestSyncStartingBalances_PartialBridgeFailure() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	portfolio := &domain.Portfolio{PortfolioID: portfolioID, Type: domain.Modere}

	suite.mockPortfolios.On("FindPortfolioByID", ctx, portfolioID).Return(portfolio, nil).Once()
	suite.mockMonthly.On("IsMonthClosed", ctx, portfolioID, suite.month).Return(false, nil).Once()
	suite.mockPortfolios.On("FindPortfolioAccounts", ctx, portfolioID).Return([]domain.PortfolioAccount{
		{PortfolioID: portfolioID, AccountID: 101, LotFactor: 2.0},
		{PortfolioID: portfolioID, AccountID: 102, LotFactor: 2.0},
	}, nil).Once()
	suite.mockHistory.On("BalancesAtMonthStart", ctx, []int64{101, 102}, suite.month).Return(map[int64]domain.BalancePoint{
		101: {AccountID: 101, Balance: decimal.NewFromInt(10000)},
	}, nil).Once()

	suite.mockBridge.On("FetchAccountInfo", ctx, int64(101)).Return(&domain.AccountSummary{
		AccountID: 101, Name: "Alpha", Balance: decimal.NewFromInt(10500),
	}, nil).Once()
	suite.mockBridge.On("FetchAccountInfo", ctx, int64(102)).Return(nil, apperrors.ErrUnavailable).Once()

	suite.mockMonthly.On("UpsertStartingBalance", ctx, portfolioID, suite.month, int64(101), decimal.NewFromInt(10000)).Return(nil).Once()

	result, err := suite.service.SyncStartingBalances(ctx, portfolioID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Synced, 1)
	suite.Equal(int64(101), result.Synced[0].AccountID)
	suite.True(result.Synced[0].Profit.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(result.Errors, 1)
	suite.Equal(int64(102), result.Errors[0].AccountID)
	suite.mockMonthly.AssertExpectations(suite.T())
}

func TestMonthlyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MonthlyServiceTestSuite))
}
