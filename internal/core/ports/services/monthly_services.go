package services

import (
	"context"

	"github.com/GerardFevill/trade-vision/internal/core/accounting"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/GerardFevill/trade-vision/internal/dto"
	"github.com/shopspring/decimal"
)

// MonthlyReaderSvc defines the read side of the monthly snapshot lifecycle.
type MonthlyReaderSvc interface {
	// CurrentMonthPreview computes the unsaved projection of the open month
	// from live balances. Never persisted; recomputed on every call.
	CurrentMonthPreview(ctx context.Context, portfolioID string) (*accounting.CurrentMonthPreview, error)

	// MonthlyHistory lists the months with records for a portfolio, newest
	// first.
	MonthlyHistory(ctx context.Context, portfolioID string) ([]domain.MonthKey, error)

	// Snapshot retrieves a persisted month. Closed months are served from
	// stored rows only, never recomputed from live data.
	Snapshot(ctx context.Context, portfolioID string, month domain.MonthKey) (*domain.MonthlySnapshot, error)

	// EliteSnapshot retrieves the Elite variant of a persisted month.
	// Valid only for Conservateur portfolios.
	EliteSnapshot(ctx context.Context, portfolioID string, month domain.MonthKey) (*dto.EliteSnapshot, error)
}

// MonthlyWriterSvc defines the write side of the monthly snapshot lifecycle.
type MonthlyWriterSvc interface {
	// OpenMonth records starting balances for a month from balance history.
	OpenMonth(ctx context.Context, portfolioID string, month domain.MonthKey) error

	// UpdateStartingBalance overrides one account's starting balance for
	// the current month. Rejected once the month is closed.
	UpdateStartingBalance(ctx context.Context, portfolioID string, accountID int64, startingBalance decimal.Decimal) error

	// UpdateWithdrawals applies a set of withdrawal overrides to an open
	// month. Rejected with a state error once the month is closed.
	UpdateWithdrawals(ctx context.Context, portfolioID string, month domain.MonthKey, req dto.BulkWithdrawalRequest) (int, error)

	// CloseCurrentMonth persists the current month's distribution as an
	// immutable snapshot. At-most-once: reissuing against a closed month is
	// rejected, never silently reapplied.
	CloseCurrentMonth(ctx context.Context, portfolioID string) (*dto.CloseMonthResult, error)

	// CloseMonth closes the named month. Only the current month may be
	// closed; any other month is rejected as a validation error.
	CloseMonth(ctx context.Context, portfolioID string, month domain.MonthKey) (*dto.CloseMonthResult, error)

	// SyncStartingBalances re-derives the current month's starting balances
	// from the terminal bridge and stores them as overrides.
	SyncStartingBalances(ctx context.Context, portfolioID string) (*dto.SyncResult, error)
}

// MonthlySvcFacade combines the monthly lifecycle interfaces.
type MonthlySvcFacade interface {
	MonthlyReaderSvc
	MonthlyWriterSvc
}
