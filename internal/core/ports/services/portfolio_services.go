package services

import (
	"context"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/GerardFevill/trade-vision/internal/dto"
)

// PortfolioReaderSvc defines the read side of portfolio management.
type PortfolioReaderSvc interface {
	// GetPortfolioByID retrieves a portfolio by id.
	GetPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error)

	// GetPortfolioDetail retrieves a portfolio with its account
	// associations joined against cached account facts.
	GetPortfolioDetail(ctx context.Context, portfolioID string) (*dto.PortfolioDetail, error)

	// ListPortfolios lists portfolio summaries, optionally filtered by
	// client, with aggregate balance/profit totals.
	ListPortfolios(ctx context.Context, client string) ([]dto.PortfolioSummary, error)

	// ListClients lists the distinct client names.
	ListClients(ctx context.Context) ([]string, error)

	// ListUsedAccountIDs lists account ids already attached to a portfolio.
	ListUsedAccountIDs(ctx context.Context) ([]int64, error)
}

// PortfolioWriterSvc defines the write side of portfolio management.
type PortfolioWriterSvc interface {
	// CreatePortfolio creates a new portfolio after validating its type.
	CreatePortfolio(ctx context.Context, req dto.CreatePortfolioRequest) (*domain.Portfolio, error)

	// UpdatePortfolio updates a portfolio's name and/or type.
	UpdatePortfolio(ctx context.Context, portfolioID string, req dto.UpdatePortfolioRequest) (*domain.Portfolio, error)

	// DeletePortfolio removes a portfolio and its associations.
	DeletePortfolio(ctx context.Context, portfolioID string) error

	// AttachAccount adds an account with a lot factor. The factor must be
	// permitted by the portfolio type and the account must not belong to
	// another portfolio.
	AttachAccount(ctx context.Context, portfolioID string, req dto.AttachAccountRequest) error

	// DetachAccount removes an account from a portfolio.
	DetachAccount(ctx context.Context, portfolioID string, accountID int64) error
}

// PortfolioSvcFacade combines all portfolio service interfaces.
type PortfolioSvcFacade interface {
	PortfolioReaderSvc
	PortfolioWriterSvc
}
