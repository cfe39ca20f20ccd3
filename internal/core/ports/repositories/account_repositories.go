package repositories

import (
	"context"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
)

// AccountCacheReader defines read operations over the cached account
// summaries the Account Data Service maintains.
type AccountCacheReader interface {
	// ListAccountSummaries retrieves every cached account summary.
	ListAccountSummaries(ctx context.Context) ([]domain.AccountSummary, error)

	// FindAccountSummaryByID retrieves one cached account summary.
	FindAccountSummaryByID(ctx context.Context, accountID int64) (*domain.AccountSummary, error)

	// FindAccountSummariesByIDs retrieves cached summaries for a set of
	// accounts, keyed by account id. Missing accounts are simply absent.
	FindAccountSummariesByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.AccountSummary, error)
}

// AccountCacheWriter defines write operations for the account cache.
type AccountCacheWriter interface {
	// UpsertAccountSummary stores or refreshes one account's cached facts.
	UpsertAccountSummary(ctx context.Context, summary domain.AccountSummary) error
}

// AccountCacheRepositoryFacade combines the account cache interfaces.
type AccountCacheRepositoryFacade interface {
	AccountCacheReader
	AccountCacheWriter
}

// BalanceHistoryReader defines read operations over recorded balance points.
type BalanceHistoryReader interface {
	// BalancesAtMonthStart returns, per account, the balance in effect at
	// the start of the month (the last point recorded before the month
	// began, or the earliest point within it). Accounts with no history
	// are absent from the result.
	BalancesAtMonthStart(ctx context.Context, accountIDs []int64, month domain.MonthKey) (map[int64]domain.BalancePoint, error)

	// History returns an account's balance points over the trailing number
	// of days, oldest first.
	History(ctx context.Context, accountID int64, days int) ([]domain.BalancePoint, error)
}

// BalanceHistoryWriter defines write operations for balance points.
type BalanceHistoryWriter interface {
	// SaveBalancePoint records one balance/equity observation. Points are
	// bucketed to 15-minute boundaries; a repeat within a bucket overwrites.
	SaveBalancePoint(ctx context.Context, point domain.BalancePoint) error

	// PruneHistory deletes points older than the retention window.
	PruneHistory(ctx context.Context, keepDays int) error
}

// BalanceHistoryRepositoryFacade combines the balance history interfaces.
type BalanceHistoryRepositoryFacade interface {
	BalanceHistoryReader
	BalanceHistoryWriter
}
