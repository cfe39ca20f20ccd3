package services_test

import (
	"context"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPortfolioRepository is a mock type for the PortfolioRepositoryFacade interface
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) FindPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	args := m.Called(ctx, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) ListPortfolios(ctx context.Context, client string) ([]domain.Portfolio, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) ListClients(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPortfolioRepository) FindPortfolioAccounts(ctx context.Context, portfolioID string) ([]domain.PortfolioAccount, error) {
	args := m.Called(ctx, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PortfolioAccount), args.Error(1)
}

func (m *MockPortfolioRepository) FindPortfolioForAccount(ctx context.Context, accountID int64) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockPortfolioRepository) ListUsedAccountIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPortfolioRepository) SavePortfolio(ctx context.Context, portfolio domain.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

func (m *MockPortfolioRepository) UpdatePortfolio(ctx context.Context, portfolio domain.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

func (m *MockPortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	args := m.Called(ctx, portfolioID)
	return args.Error(0)
}

func (m *MockPortfolioRepository) UpsertAccount(ctx context.Context, assoc domain.PortfolioAccount) error {
	args := m.Called(ctx, assoc)
	return args.Error(0)
}

func (m *MockPortfolioRepository) RemoveAccount(ctx context.Context, portfolioID string, accountID int64) error {
	args := m.Called(ctx, portfolioID, accountID)
	return args.Error(0)
}

// MockMonthlyRepository is a mock type for the MonthlyRepositoryFacade interface
type MockMonthlyRepository struct {
	mock.Mock
}

func (m *MockMonthlyRepository) FindMonthlyRecords(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.MonthlyAccountRecord, error) {
	args := m.Called(ctx, portfolioID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAccountRecord), args.Error(1)
}

func (m *MockMonthlyRepository) ListMonths(ctx context.Context, portfolioID string) ([]domain.MonthKey, error) {
	args := m.Called(ctx, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthKey), args.Error(1)
}

func (m *MockMonthlyRepository) IsMonthClosed(ctx context.Context, portfolioID string, month domain.MonthKey) (bool, error) {
	args := m.Called(ctx, portfolioID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockMonthlyRepository) FindEliteRecords(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.EliteAccountRecord, error) {
	args := m.Called(ctx, portfolioID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EliteAccountRecord), args.Error(1)
}

func (m *MockMonthlyRepository) FindEliteTransfers(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.EliteTransfer, error) {
	args := m.Called(ctx, portfolioID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EliteTransfer), args.Error(1)
}

func (m *MockMonthlyRepository) OpenMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.MonthlyAccountRecord) error {
	args := m.Called(ctx, portfolioID, month, records)
	return args.Error(0)
}

func (m *MockMonthlyRepository) UpsertStartingBalance(ctx context.Context, portfolioID string, month domain.MonthKey, accountID int64, startingBalance decimal.Decimal) error {
	args := m.Called(ctx, portfolioID, month, accountID, startingBalance)
	return args.Error(0)
}

func (m *MockMonthlyRepository) UpdateWithdrawal(ctx context.Context, portfolioID string, month domain.MonthKey, accountID int64, withdrawal decimal.Decimal, note *string) error {
	args := m.Called(ctx, portfolioID, month, accountID, withdrawal, note)
	return args.Error(0)
}

func (m *MockMonthlyRepository) CloseMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.MonthlyAccountRecord) error {
	args := m.Called(ctx, portfolioID, month, records)
	return args.Error(0)
}

func (m *MockMonthlyRepository) CloseEliteMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.EliteAccountRecord, transfers []domain.EliteTransfer) error {
	args := m.Called(ctx, portfolioID, month, records, transfers)
	return args.Error(0)
}

// MockAccountCacheRepository is a mock type for the AccountCacheRepositoryFacade interface
type MockAccountCacheRepository struct {
	mock.Mock
}

func (m *MockAccountCacheRepository) ListAccountSummaries(ctx context.Context) ([]domain.AccountSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountSummary), args.Error(1)
}

func (m *MockAccountCacheRepository) FindAccountSummaryByID(ctx context.Context, accountID int64) (*domain.AccountSummary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

func (m *MockAccountCacheRepository) FindAccountSummariesByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.AccountSummary, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.AccountSummary), args.Error(1)
}

func (m *MockAccountCacheRepository) UpsertAccountSummary(ctx context.Context, summary domain.AccountSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock type for the BalanceHistoryRepositoryFacade interface
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) BalancesAtMonthStart(ctx context.Context, accountIDs []int64, month domain.MonthKey) (map[int64]domain.BalancePoint, error) {
	args := m.Called(ctx, accountIDs, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.BalancePoint), args.Error(1)
}

func (m *MockBalanceHistoryRepository) History(ctx context.Context, accountID int64, days int) ([]domain.BalancePoint, error) {
	args := m.Called(ctx, accountID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalancePoint), args.Error(1)
}

func (m *MockBalanceHistoryRepository) SaveBalancePoint(ctx context.Context, point domain.BalancePoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) PruneHistory(ctx context.Context, keepDays int) error {
	args := m.Called(ctx, keepDays)
	return args.Error(0)
}

// MockTerminalBridge is a mock type for the TerminalBridgeSvc interface
type MockTerminalBridge struct {
	mock.Mock
}

func (m *MockTerminalBridge) FetchAccountInfo(ctx context.Context, login int64) (*domain.AccountSummary, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

func (m *MockTerminalBridge) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
