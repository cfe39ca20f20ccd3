package services

import (
	"context"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
)

// AccountDataSvcFacade is the facade over the Account Data Service: cached
// account facts, live refresh from the terminal bridge, and balance history.
type AccountDataSvcFacade interface {
	// ListAccounts returns every cached account summary.
	ListAccounts(ctx context.Context) ([]domain.AccountSummary, error)

	// GetAccount returns one cached account summary.
	GetAccount(ctx context.Context, accountID int64) (*domain.AccountSummary, error)

	// GetAccounts returns cached summaries for a set of accounts, keyed by
	// id. Accounts missing from the cache are absent, not an error: the
	// preview degrades rather than blocking.
	GetAccounts(ctx context.Context, accountIDs []int64) (map[int64]domain.AccountSummary, error)

	// RefreshAccounts pulls live facts from the bridge for every cached
	// account, updates the cache and appends balance history points.
	// Returns the number of accounts refreshed; bridge failures for
	// individual accounts are logged and skipped.
	RefreshAccounts(ctx context.Context) (int, error)

	// BalancesAtMonthStart exposes the month-start balance lookup used to
	// seed starting balances.
	BalancesAtMonthStart(ctx context.Context, accountIDs []int64, month domain.MonthKey) (map[int64]domain.BalancePoint, error)

	// BalanceHistory returns an account's trailing balance points.
	BalanceHistory(ctx context.Context, accountID int64, days int) ([]domain.BalancePoint, error)
}

// TerminalBridgeSvc is the outbound port to the terminal bridge process
// that fronts the trading terminals.
type TerminalBridgeSvc interface {
	// FetchAccountInfo retrieves one account's live facts by login.
	FetchAccountInfo(ctx context.Context, login int64) (*domain.AccountSummary, error)

	// Ping checks bridge reachability.
	Ping(ctx context.Context) error
}
