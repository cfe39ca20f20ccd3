package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/accounting"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/GerardFevill/trade-vision/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// portfolioService implements the PortfolioSvcFacade interface
type portfolioService struct {
	BaseService
	portfolioRepo    portsrepo.PortfolioRepositoryFacade
	accountCacheRepo portsrepo.AccountCacheReader
	now              func() time.Time
}

// PortfolioServiceOption is a functional option for configuring the portfolio service
type PortfolioServiceOption func(*portfolioService)

// WithPortfolioClock overrides the clock, mainly for tests.
func WithPortfolioClock(now func() time.Time) PortfolioServiceOption {
	return func(s *portfolioService) {
		s.now = now
	}
}

// NewPortfolioService creates a new portfolio service with the provided options
func NewPortfolioService(portfolioRepo portsrepo.PortfolioRepositoryFacade, accountCacheRepo portsrepo.AccountCacheReader, options ...PortfolioServiceOption) portssvc.PortfolioSvcFacade {
	svc := &portfolioService{
		portfolioRepo:    portfolioRepo,
		accountCacheRepo: accountCacheRepo,
		now:              time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PortfolioSvcFacade = (*portfolioService)(nil)

func (s *portfolioService) CreatePortfolio(ctx context.Context, req dto.CreatePortfolioRequest) (*domain.Portfolio, error) {
	if !req.Type.IsValid() {
		err := fmt.Errorf("unknown portfolio type %q: %w", req.Type, apperrors.ErrValidation)
		s.LogError(ctx, err, "Invalid portfolio type", slog.String("type", string(req.Type)))
		return nil, err
	}

	now := s.now()
	portfolio := domain.Portfolio{
		PortfolioID: uuid.NewString(),
		Name:        req.Name,
		Type:        req.Type,
		Client:      req.Client,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.portfolioRepo.SavePortfolio(ctx, portfolio); err != nil {
		s.LogError(ctx, err, "Failed to save portfolio", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.LogInfo(ctx, "Portfolio created",
		slog.String("portfolio_id", portfolio.PortfolioID),
		slog.String("type", string(portfolio.Type)))
	return &portfolio, nil
}

func (s *portfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, req dto.UpdatePortfolioRequest) (*domain.Portfolio, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find portfolio for update", slog.String("portfolio_id", portfolioID))
		return nil, err
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Type != nil && *req.Type != portfolio.Type {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("unknown portfolio type %q: %w", *req.Type, apperrors.ErrValidation)
		}
		// A type change must keep every attached factor legal under the
		// new type's table.
		assocs, err := s.portfolioRepo.FindPortfolioAccounts(ctx, portfolioID)
		if err != nil {
			return nil, fmt.Errorf("failed to load portfolio accounts: %w", err)
		}
		for _, assoc := range assocs {
			if err := accounting.ValidateLotFactor(*req.Type, assoc.LotFactor); err != nil {
				s.LogError(ctx, err, "Type change rejected by attached lot factor",
					slog.Int64("account_id", assoc.AccountID),
					slog.Float64("lot_factor", assoc.LotFactor))
				return nil, fmt.Errorf("account %d carries lot factor %g not allowed for type %s: %w",
					assoc.AccountID, assoc.LotFactor, *req.Type, apperrors.ErrValidation)
			}
		}
		portfolio.Type = *req.Type
	}
	portfolio.UpdatedAt = s.now()

	if err := s.portfolioRepo.UpdatePortfolio(ctx, *portfolio); err != nil {
		s.LogError(ctx, err, "Failed to update portfolio", slog.String("portfolio_id", portfolioID))
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}
	return portfolio, nil
}

func (s *portfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return err
	}
	if err := s.portfolioRepo.DeletePortfolio(ctx, portfolioID); err != nil {
		s.LogError(ctx, err, "Failed to delete portfolio", slog.String("portfolio_id", portfolioID))
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	s.LogInfo(ctx, "Portfolio deleted", slog.String("portfolio_id", portfolioID))
	return nil
}

func (s *portfolioService) AttachAccount(ctx context.Context, portfolioID string, req dto.AttachAccountRequest) error {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return err
	}

	if err := accounting.ValidateLotFactor(portfolio.Type, req.LotFactor); err != nil {
		s.LogError(ctx, err, "Lot factor rejected",
			slog.String("portfolio_id", portfolioID),
			slog.Float64("lot_factor", req.LotFactor))
		return err
	}

	holder, err := s.portfolioRepo.FindPortfolioForAccount(ctx, req.AccountID)
	if err != nil {
		return fmt.Errorf("failed to check account assignment: %w", err)
	}
	if holder != "" && holder != portfolioID {
		err := fmt.Errorf("account %d already belongs to another portfolio: %w", req.AccountID, apperrors.ErrValidation)
		s.LogError(ctx, err, "Account already assigned",
			slog.Int64("account_id", req.AccountID),
			slog.String("holder_portfolio_id", holder))
		return err
	}

	assoc := domain.PortfolioAccount{
		PortfolioID: portfolioID,
		AccountID:   req.AccountID,
		LotFactor:   req.LotFactor,
	}
	if err := s.portfolioRepo.UpsertAccount(ctx, assoc); err != nil {
		s.LogError(ctx, err, "Failed to attach account", slog.Int64("account_id", req.AccountID))
		return fmt.Errorf("failed to attach account: %w", err)
	}
	s.LogInfo(ctx, "Account attached",
		slog.String("portfolio_id", portfolioID),
		slog.Int64("account_id", req.AccountID),
		slog.Float64("lot_factor", req.LotFactor))
	return nil
}

func (s *portfolioService) DetachAccount(ctx context.Context, portfolioID string, accountID int64) error {
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return err
	}
	if err := s.portfolioRepo.RemoveAccount(ctx, portfolioID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to detach account", slog.Int64("account_id", accountID))
		return fmt.Errorf("failed to detach account: %w", err)
	}
	return nil
}

func (s *portfolioService) GetPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	return s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
}

func (s *portfolioService) GetPortfolioDetail(ctx context.Context, portfolioID string) (*dto.PortfolioDetail, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	assocs, err := s.portfolioRepo.FindPortfolioAccounts(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio accounts: %w", err)
	}

	accountIDs := make([]int64, len(assocs))
	for i, assoc := range assocs {
		accountIDs[i] = assoc.AccountID
	}
	summaries, err := s.accountCacheRepo.FindAccountSummariesByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached accounts: %w", err)
	}

	detail := &dto.PortfolioDetail{
		PortfolioID: portfolio.PortfolioID,
		Name:        portfolio.Name,
		Type:        portfolio.Type,
		Client:      portfolio.Client,
		CreatedAt:   portfolio.CreatedAt,
		UpdatedAt:   portfolio.UpdatedAt,
		Accounts:    make([]dto.PortfolioAccountDetail, 0, len(assocs)),
	}
	detail.AvailableFactors, err = accounting.AllowedLotFactors(portfolio.Type)
	if err != nil {
		return nil, err
	}

	for _, assoc := range assocs {
		row := dto.PortfolioAccountDetail{
			AccountID: assoc.AccountID,
			LotFactor: assoc.LotFactor,
		}
		if summary, ok := summaries[assoc.AccountID]; ok {
			resp := dto.ToAccountSummaryResponse(&summary)
			row.Account = &resp
			detail.TotalBalance = detail.TotalBalance.Add(summary.Balance)
			detail.TotalEquity = detail.TotalEquity.Add(summary.Equity)
			detail.TotalProfit = detail.TotalProfit.Add(summary.Profit)
		}
		detail.Accounts = append(detail.Accounts, row)
	}
	detail.AccountCount = len(assocs)
	detail.TotalBalance = detail.TotalBalance.Round(2)
	detail.TotalEquity = detail.TotalEquity.Round(2)
	detail.TotalProfit = detail.TotalProfit.Round(2)
	return detail, nil
}

func (s *portfolioService) ListPortfolios(ctx context.Context, client string) ([]dto.PortfolioSummary, error) {
	portfolios, err := s.portfolioRepo.ListPortfolios(ctx, client)
	if err != nil {
		s.LogError(ctx, err, "Failed to list portfolios")
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	summaries := make([]dto.PortfolioSummary, 0, len(portfolios))
	for _, p := range portfolios {
		row := dto.PortfolioSummary{
			PortfolioID: p.PortfolioID,
			Name:        p.Name,
			Type:        p.Type,
			Client:      p.Client,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		assocs, err := s.portfolioRepo.FindPortfolioAccounts(ctx, p.PortfolioID)
		if err != nil {
			return nil, fmt.Errorf("failed to load accounts for portfolio %s: %w", p.PortfolioID, err)
		}
		accountIDs := make([]int64, len(assocs))
		for i, assoc := range assocs {
			accountIDs[i] = assoc.AccountID
		}
		cached, err := s.accountCacheRepo.FindAccountSummariesByIDs(ctx, accountIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load cached accounts: %w", err)
		}
		totalBalance := decimal.Zero
		totalProfit := decimal.Zero
		for _, summary := range cached {
			totalBalance = totalBalance.Add(summary.Balance)
			totalProfit = totalProfit.Add(summary.Profit)
		}
		row.AccountCount = len(assocs)
		row.TotalBalance = totalBalance.Round(2)
		row.TotalProfit = totalProfit.Round(2)
		summaries = append(summaries, row)
	}
	return summaries, nil
}

func (s *portfolioService) ListClients(ctx context.Context) ([]string, error) {
	return s.portfolioRepo.ListClients(ctx)
}

func (s *portfolioService) ListUsedAccountIDs(ctx context.Context) ([]int64, error) {
	return s.portfolioRepo.ListUsedAccountIDs(ctx)
}
