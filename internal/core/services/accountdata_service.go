package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

// accountDataService implements the AccountDataSvcFacade interface. It
// fronts the account cache and balance history, and pulls live facts from
// the terminal bridge on refresh.
type accountDataService struct {
	BaseService
	cacheRepo   portsrepo.AccountCacheRepositoryFacade
	historyRepo portsrepo.BalanceHistoryRepositoryFacade
	bridge      portssvc.TerminalBridgeSvc
	now         func() time.Time
}

// AccountDataServiceOption is a functional option for configuring the account data service
type AccountDataServiceOption func(*accountDataService)

// WithAccountDataClock overrides the clock, mainly for tests.
func WithAccountDataClock(now func() time.Time) AccountDataServiceOption {
	return func(s *accountDataService) {
		s.now = now
	}
}

// NewAccountDataService creates a new account data service.
func NewAccountDataService(
	cacheRepo portsrepo.AccountCacheRepositoryFacade,
	historyRepo portsrepo.BalanceHistoryRepositoryFacade,
	bridge portssvc.TerminalBridgeSvc,
	options ...AccountDataServiceOption,
) portssvc.AccountDataSvcFacade {
	svc := &accountDataService{
		cacheRepo:   cacheRepo,
		historyRepo: historyRepo,
		bridge:      bridge,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountDataSvcFacade = (*accountDataService)(nil)

func (s *accountDataService) ListAccounts(ctx context.Context) ([]domain.AccountSummary, error) {
	return s.cacheRepo.ListAccountSummaries(ctx)
}

func (s *accountDataService) GetAccount(ctx context.Context, accountID int64) (*domain.AccountSummary, error) {
	return s.cacheRepo.FindAccountSummaryByID(ctx, accountID)
}

func (s *accountDataService) GetAccounts(ctx context.Context, accountIDs []int64) (map[int64]domain.AccountSummary, error) {
	return s.cacheRepo.FindAccountSummariesByIDs(ctx, accountIDs)
}

func (s *accountDataService) RefreshAccounts(ctx context.Context) (int, error) {
	if s.bridge == nil {
		return 0, fmt.Errorf("terminal bridge not configured: %w", apperrors.ErrUnavailable)
	}

	cached, err := s.cacheRepo.ListAccountSummaries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cached accounts: %w", err)
	}

	refreshed := 0
	now := s.now()
	for _, stale := range cached {
		info, err := s.bridge.FetchAccountInfo(ctx, stale.AccountID)
		if err != nil {
			// One dead terminal must not starve the others; mark it
			// disconnected and move on.
			s.LogError(ctx, err, "Bridge fetch failed during refresh",
				slog.Int64("account_id", stale.AccountID))
			stale.Connected = false
			if err := s.cacheRepo.UpsertAccountSummary(ctx, stale); err != nil {
				s.LogError(ctx, err, "Failed to mark account disconnected",
					slog.Int64("account_id", stale.AccountID))
			}
			continue
		}

		info.UpdatedAt = now
		if err := s.cacheRepo.UpsertAccountSummary(ctx, *info); err != nil {
			s.LogError(ctx, err, "Failed to update account cache",
				slog.Int64("account_id", info.AccountID))
			continue
		}
		point := domain.BalancePoint{
			AccountID: info.AccountID,
			Balance:   info.Balance,
			Equity:    info.Equity,
			Timestamp: now,
		}
		if err := s.historyRepo.SaveBalancePoint(ctx, point); err != nil {
			s.LogError(ctx, err, "Failed to record balance point",
				slog.Int64("account_id", info.AccountID))
		}
		refreshed++
	}

	s.LogInfo(ctx, "Account cache refreshed",
		slog.Int("refreshed", refreshed),
		slog.Int("total", len(cached)))
	return refreshed, nil
}

func (s *accountDataService) BalancesAtMonthStart(ctx context.Context, accountIDs []int64, month domain.MonthKey) (map[int64]domain.BalancePoint, error) {
	if !month.IsValid() {
		return nil, fmt.Errorf("invalid month %q: %w", month, apperrors.ErrValidation)
	}
	return s.historyRepo.BalancesAtMonthStart(ctx, accountIDs, month)
}

func (s *accountDataService) BalanceHistory(ctx context.Context, accountID int64, days int) ([]domain.BalancePoint, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	// Unknown accounts should read as 404, not an empty series.
	if _, err := s.cacheRepo.FindAccountSummaryByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.historyRepo.History(ctx, accountID, days)
}
