package repositories

import (
	"context"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyReader defines read operations for monthly accounting records.
type MonthlyReader interface {
	// FindMonthlyRecords retrieves a portfolio's records for one month,
	// ordered by lot factor.
	FindMonthlyRecords(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.MonthlyAccountRecord, error)

	// ListMonths returns the months that have records for a portfolio,
	// newest first.
	ListMonths(ctx context.Context, portfolioID string) ([]domain.MonthKey, error)

	// IsMonthClosed reports whether the month has been closed for the
	// portfolio. Closed months are immutable.
	IsMonthClosed(ctx context.Context, portfolioID string, month domain.MonthKey) (bool, error)

	// FindEliteRecords retrieves the Elite variant of a month's records,
	// ordered by lot factor descending (N5 first).
	FindEliteRecords(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.EliteAccountRecord, error)

	// FindEliteTransfers retrieves the audit transfer records stored with a
	// closed Elite month.
	FindEliteTransfers(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.EliteTransfer, error)
}

// MonthlyWriter defines write operations for monthly accounting records.
// Close operations persist a whole month atomically: either every account
// record lands together with the closed flag, or nothing does.
type MonthlyWriter interface {
	// OpenMonth records starting balances for a month, skipping accounts
	// that already have a record.
	OpenMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.MonthlyAccountRecord) error

	// UpsertStartingBalance manually overrides one account's starting
	// balance for a month, creating the record if absent.
	UpsertStartingBalance(ctx context.Context, portfolioID string, month domain.MonthKey, accountID int64, startingBalance decimal.Decimal) error

	// UpdateWithdrawal sets the actual withdrawal (and optional note) for
	// one account's record in an open month.
	UpdateWithdrawal(ctx context.Context, portfolioID string, month domain.MonthKey, accountID int64, withdrawal decimal.Decimal, note *string) error

	// CloseMonth persists the final Standard-path records for a month and
	// flips them closed, in one transaction.
	CloseMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.MonthlyAccountRecord) error

	// CloseEliteMonth persists the final Elite records plus their audit
	// transfers and flips the month closed, in one transaction.
	CloseEliteMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.EliteAccountRecord, transfers []domain.EliteTransfer) error
}

// MonthlyRepositoryFacade combines all monthly-record repository interfaces.
type MonthlyRepositoryFacade interface {
	MonthlyReader
	MonthlyWriter
}
