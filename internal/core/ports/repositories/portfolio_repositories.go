package repositories

import (
	"context"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
)

// PortfolioReader defines read operations for portfolios and their account
// associations.
type PortfolioReader interface {
	// FindPortfolioByID retrieves a portfolio by its unique identifier.
	FindPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error)

	// ListPortfolios retrieves all portfolios, optionally filtered by client
	// (empty string means no filter).
	ListPortfolios(ctx context.Context, client string) ([]domain.Portfolio, error)

	// ListClients retrieves the distinct client names across portfolios.
	ListClients(ctx context.Context) ([]string, error)

	// FindPortfolioAccounts retrieves the account associations of a
	// portfolio, ordered by lot factor.
	FindPortfolioAccounts(ctx context.Context, portfolioID string) ([]domain.PortfolioAccount, error)

	// FindPortfolioForAccount returns the portfolio id currently holding the
	// account, or "" when the account is unassigned.
	FindPortfolioForAccount(ctx context.Context, accountID int64) (string, error)

	// ListUsedAccountIDs returns every account id attached to any portfolio.
	ListUsedAccountIDs(ctx context.Context) ([]int64, error)
}

// PortfolioWriter defines write operations for portfolios.
type PortfolioWriter interface {
	// SavePortfolio persists a new portfolio.
	SavePortfolio(ctx context.Context, portfolio domain.Portfolio) error

	// UpdatePortfolio updates an existing portfolio's name and/or type.
	UpdatePortfolio(ctx context.Context, portfolio domain.Portfolio) error

	// DeletePortfolio removes a portfolio and cascades to its account
	// associations and monthly records.
	DeletePortfolio(ctx context.Context, portfolioID string) error

	// UpsertAccount attaches an account with a lot factor, updating the
	// factor when the association already exists.
	UpsertAccount(ctx context.Context, assoc domain.PortfolioAccount) error

	// RemoveAccount detaches an account from a portfolio.
	RemoveAccount(ctx context.Context, portfolioID string, accountID int64) error
}

// PortfolioRepositoryFacade combines all portfolio repository interfaces.
type PortfolioRepositoryFacade interface {
	PortfolioReader
	PortfolioWriter
}
