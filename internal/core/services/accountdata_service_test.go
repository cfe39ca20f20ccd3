package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/GerardFevill/trade-vision/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountDataServiceTestSuite struct {
	suite.Suite
	mockCache   *MockAccountCacheRepository
	mockHistory *MockBalanceHistoryRepository
	mockBridge  *MockTerminalBridge
	service     portssvc.AccountDataSvcFacade

	now time.Time
}

func (suite *AccountDataServiceTestSuite) SetupTest() {
	suite.mockCache = new(MockAccountCacheRepository)
	suite.mockHistory = new(MockBalanceHistoryRepository)
	suite.mockBridge = new(MockTerminalBridge)
	suite.now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewAccountDataService(
		suite.mockCache,
		suite.mockHistory,
		suite.mockBridge,
		services.WithAccountDataClock(func() time.Time { return suite.now }),
	)
}

func (suite *AccountDataServiceTestSuite) TestRefreshAccounts_SkipsDeadTerminal() {
	ctx := context.Background()
	cached := []domain.AccountSummary{
		{AccountID: 101, Name: "Alpha", Connected: true},
		{AccountID: 102, Name: "Beta", Connected: true},
	}
	fresh := &domain.AccountSummary{
		AccountID: 101,
		Name:      "Alpha",
		Balance:   decimal.NewFromInt(10500),
		Equity:    decimal.NewFromInt(10450),
		Connected: true,
	}

	suite.mockCache.On("ListAccountSummaries", ctx).Return(cached, nil).Once()
	suite.mockBridge.On("FetchAccountInfo", ctx, int64(101)).Return(fresh, nil).Once()
	suite.mockBridge.On("FetchAccountInfo", ctx, int64(102)).Return(nil, apperrors.ErrUnavailable).Once()

	suite.mockCache.On("UpsertAccountSummary", ctx, mock.MatchedBy(func(s domain.AccountSummary) bool {
		return s.AccountID == 101 && s.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()
	// The unreachable account is written back disconnected, not dropped.
	suite.mockCache.On("UpsertAccountSummary", ctx, mock.MatchedBy(func(s domain.AccountSummary) bool {
		return s.AccountID == 102 && !s.Connected
	})).Return(nil).Once()
	suite.mockHistory.On("SaveBalancePoint", ctx, domain.BalancePoint{
		AccountID: 101,
		Balance:   decimal.NewFromInt(10500),
		Equity:    decimal.NewFromInt(10450),
		Timestamp: suite.now,
	}).Return(nil).Once()

	refreshed, err := suite.service.RefreshAccounts(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, refreshed)
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockHistory.AssertExpectations(suite.T())
}

func (suite *AccountDataServiceTestSuite) TestRefreshAccounts_NoBridge() {
	svc := services.NewAccountDataService(suite.mockCache, suite.mockHistory, nil)

	refreshed, err := svc.RefreshAccounts(context.Background())

	suite.Require().Error(err)
	suite.Zero(refreshed)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

func (suite *AccountDataServiceTestSuite) TestBalanceHistory_UnknownAccount() {
	ctx := context.Background()

	suite.mockCache.On("FindAccountSummaryByID", ctx, int64(999)).Return(nil, apperrors.ErrNotFound).Once()

	points, err := suite.service.BalanceHistory(ctx, 999, 30)

	suite.Require().Error(err)
	suite.Nil(points)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockHistory.AssertNotCalled(suite.T(), "History", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountDataServiceTestSuite) TestBalanceHistory_ClampsDays() {
	ctx := context.Background()
	summary := &domain.AccountSummary{AccountID: 101}

	suite.mockCache.On("FindAccountSummaryByID", ctx, int64(101)).Return(summary, nil).Twice()
	// Zero days falls back to the default window, oversized requests clamp.
	suite.mockHistory.On("History", ctx, int64(101), 30).Return([]domain.BalancePoint{}, nil).Once()
	suite.mockHistory.On("History", ctx, int64(101), 365).Return([]domain.BalancePoint{}, nil).Once()

	_, err := suite.service.BalanceHistory(ctx, 101, 0)
	suite.Require().NoError(err)
	_, err = suite.service.BalanceHistory(ctx, 101, 1000)
	suite.Require().NoError(err)

	suite.mockHistory.AssertExpectations(suite.T())
}

func (suite *AccountDataServiceTestSuite) TestBalancesAtMonthStart_InvalidMonth() {
	ctx := context.Background()

	points, err := suite.service.BalancesAtMonthStart(ctx, []int64{101}, domain.MonthKey("not-a-month"))

	suite.Require().Error(err)
	suite.Nil(points)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestAccountDataServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountDataServiceTestSuite))
}
