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
	"github.com/shopspring/decimal"
)

// monthlyService implements the MonthlySvcFacade interface. It orchestrates
// the month lifecycle: previews from live balances, operator overrides while
// the month is open, and the one-shot close that freezes the snapshot.
type monthlyService struct {
	BaseService
	portfolioRepo      portsrepo.PortfolioReader
	monthlyRepo        portsrepo.MonthlyRepositoryFacade
	accountCacheRepo   portsrepo.AccountCacheReader
	balanceHistoryRepo portsrepo.BalanceHistoryReader
	bridge             portssvc.TerminalBridgeSvc
	now                func() time.Time
}

// MonthlyServiceOption is a functional option for configuring the monthly service
type MonthlyServiceOption func(*monthlyService)

// WithMonthlyClock overrides the clock, mainly for tests.
func WithMonthlyClock(now func() time.Time) MonthlyServiceOption {
	return func(s *monthlyService) {
		s.now = now
	}
}

// WithTerminalBridge wires the bridge used by SyncStartingBalances.
func WithTerminalBridge(bridge portssvc.TerminalBridgeSvc) MonthlyServiceOption {
	return func(s *monthlyService) {
		s.bridge = bridge
	}
}

// NewMonthlyService creates a new monthly lifecycle service.
func NewMonthlyService(
	portfolioRepo portsrepo.PortfolioReader,
	monthlyRepo portsrepo.MonthlyRepositoryFacade,
	accountCacheRepo portsrepo.AccountCacheReader,
	balanceHistoryRepo portsrepo.BalanceHistoryReader,
	options ...MonthlyServiceOption,
) portssvc.MonthlySvcFacade {
	svc := &monthlyService{
		portfolioRepo:      portfolioRepo,
		monthlyRepo:        monthlyRepo,
		accountCacheRepo:   accountCacheRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		now:                time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MonthlySvcFacade = (*monthlyService)(nil)

// resolveAccountStates builds the engine inputs for one portfolio and month.
// Starting balances resolve in precedence order: a stored monthly record
// (manual override or month open), then the balance history point at month
// start, then the live balance itself as a degraded zero-profit fallback.
func (s *monthlyService) resolveAccountStates(ctx context.Context, portfolioID string, month domain.MonthKey) ([]accounting.AccountState, map[int64]domain.MonthlyAccountRecord, error) {
	assocs, err := s.portfolioRepo.FindPortfolioAccounts(ctx, portfolioID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load portfolio accounts: %w", err)
	}

	accountIDs := make([]int64, len(assocs))
	for i, assoc := range assocs {
		accountIDs[i] = assoc.AccountID
	}

	summaries, err := s.accountCacheRepo.FindAccountSummariesByIDs(ctx, accountIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cached accounts: %w", err)
	}

	records, err := s.monthlyRepo.FindMonthlyRecords(ctx, portfolioID, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load monthly records: %w", err)
	}
	recorded := make(map[int64]domain.MonthlyAccountRecord, len(records))
	for _, r := range records {
		recorded[r.AccountID] = r
	}

	monthStart, err := s.balanceHistoryRepo.BalancesAtMonthStart(ctx, accountIDs, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load month-start balances: %w", err)
	}

	states := make([]accounting.AccountState, 0, len(assocs))
	for _, assoc := range assocs {
		state := accounting.AccountState{
			AccountID: assoc.AccountID,
			LotFactor: assoc.LotFactor,
		}
		if summary, ok := summaries[assoc.AccountID]; ok {
			state.Name = summary.Name
			state.Currency = summary.Currency
			state.CurrentBalance = summary.Balance
		}
		if record, ok := recorded[assoc.AccountID]; ok {
			state.StartingBalance = record.StartingBalance
			state.HasStartingBalance = true
		} else if point, ok := monthStart[assoc.AccountID]; ok {
			state.StartingBalance = point.Balance
			state.HasStartingBalance = true
		} else {
			s.LogDebug(ctx, "No starting balance for account, degrading to current balance",
				slog.Int64("account_id", assoc.AccountID),
				slog.String("month", string(month)))
		}
		states = append(states, state)
	}
	return states, recorded, nil
}

func (s *monthlyService) CurrentMonthPreview(ctx context.Context, portfolioID string) (*accounting.CurrentMonthPreview, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	month := domain.MonthKeyOf(now)
	s.autoCloseDanglingMonth(ctx, portfolio, month)

	states, _, err := s.resolveAccountStates(ctx, portfolioID, month)
	if err != nil {
		return nil, err
	}
	return accounting.ComputePreview(portfolio.Type, states, now)
}

// autoCloseDanglingMonth closes the previous month if it still has open
// records, using the balances recorded at the turn of the month as its
// closing balances. Best effort: serving the preview never fails on it.
func (s *monthlyService) autoCloseDanglingMonth(ctx context.Context, portfolio *domain.Portfolio, current domain.MonthKey) {
	prev := current.Prev()
	records, err := s.monthlyRepo.FindMonthlyRecords(ctx, portfolio.PortfolioID, prev)
	if err != nil || len(records) == 0 || records[0].IsClosed {
		return
	}

	accountIDs := make([]int64, 0, len(records))
	recorded := make(map[int64]domain.MonthlyAccountRecord, len(records))
	for _, r := range records {
		accountIDs = append(accountIDs, r.AccountID)
		recorded[r.AccountID] = r
	}
	// The balance at the start of the current month is the previous month's
	// closing balance.
	endings, err := s.balanceHistoryRepo.BalancesAtMonthStart(ctx, accountIDs, current)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve closing balances for dangling month",
			slog.String("portfolio_id", portfolio.PortfolioID),
			slog.String("month", string(prev)))
		return
	}

	states := make([]accounting.AccountState, 0, len(records))
	for _, r := range records {
		state := accounting.AccountState{
			AccountID:          r.AccountID,
			Name:               r.AccountName,
			Currency:           r.Currency,
			LotFactor:          r.LotFactor,
			StartingBalance:    r.StartingBalance,
			HasStartingBalance: true,
			// No history point means no observed movement.
			CurrentBalance: r.StartingBalance,
		}
		if point, ok := endings[r.AccountID]; ok {
			state.CurrentBalance = point.Balance
		}
		states = append(states, state)
	}

	asOf := prev.Next().Start().Add(-time.Second)
	result, err := s.closeMonthFromStates(ctx, portfolio, prev, states, recorded, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to auto-close dangling month",
			slog.String("portfolio_id", portfolio.PortfolioID),
			slog.String("month", string(prev)))
		return
	}
	s.LogInfo(ctx, "Auto-closed dangling month",
		slog.String("portfolio_id", portfolio.PortfolioID),
		slog.String("month", string(prev)),
		slog.Int("accounts", result.AccountsClosed))
}

func (s *monthlyService) MonthlyHistory(ctx context.Context, portfolioID string) ([]domain.MonthKey, error) {
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return nil, err
	}
	return s.monthlyRepo.ListMonths(ctx, portfolioID)
}

func (s *monthlyService) Snapshot(ctx context.Context, portfolioID string, month domain.MonthKey) (*domain.MonthlySnapshot, error) {
	if !month.IsValid() {
		return nil, fmt.Errorf("invalid month %q: %w", month, apperrors.ErrValidation)
	}
	records, err := s.monthlyRepo.FindMonthlyRecords(ctx, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records for month %s: %w", month, apperrors.ErrNotFound)
	}

	snapshot := &domain.MonthlySnapshot{
		PortfolioID: portfolioID,
		Month:       month,
		Accounts:    records,
		IsClosed:    records[0].IsClosed,
	}
	for _, r := range records {
		snapshot.TotalStarting = snapshot.TotalStarting.Add(r.StartingBalance)
		snapshot.TotalEnding = snapshot.TotalEnding.Add(r.EndingBalance)
		snapshot.TotalProfit = snapshot.TotalProfit.Add(r.Profit)
		snapshot.TotalWithdrawal = snapshot.TotalWithdrawal.Add(r.ActualWithdrawal)
	}
	if !snapshot.TotalStarting.IsZero() {
		snapshot.TotalProfitPercent = snapshot.TotalProfit.Div(snapshot.TotalStarting).Mul(decimal.NewFromInt(100))
	}
	return snapshot, nil
}

func (s *monthlyService) EliteSnapshot(ctx context.Context, portfolioID string, month domain.MonthKey) (*dto.EliteSnapshot, error) {
	if !month.IsValid() {
		return nil, fmt.Errorf("invalid month %q: %w", month, apperrors.ErrValidation)
	}
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if !accounting.UsesEliteAlgorithm(portfolio.Type) {
		return nil, fmt.Errorf("portfolio type %s has no tiered distribution: %w", portfolio.Type, apperrors.ErrValidation)
	}

	records, err := s.monthlyRepo.FindEliteRecords(ctx, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiered records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no tiered records for month %s: %w", month, apperrors.ErrNotFound)
	}
	transfers, err := s.monthlyRepo.FindEliteTransfers(ctx, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load tier transfers: %w", err)
	}

	snapshot := &dto.EliteSnapshot{
		Month:     month,
		IsClosed:  records[0].IsClosed,
		Accounts:  make([]dto.EliteAccountResponse, 0, len(records)),
		Transfers: dto.ToEliteTransferResponses(transfers),
	}
	for i := range records {
		r := &records[i]
		snapshot.TotalStarting = snapshot.TotalStarting.Add(r.StartingBalance)
		snapshot.TotalEnding = snapshot.TotalEnding.Add(r.EndingBalance)
		snapshot.TotalProfit = snapshot.TotalProfit.Add(r.MonthlyProfit)
		snapshot.TotalRemuneration = snapshot.TotalRemuneration.Add(r.Remuneration)
		snapshot.TotalCompound = snapshot.TotalCompound.Add(r.Compound)
		snapshot.TotalTransfer = snapshot.TotalTransfer.Add(r.Transfer)
		snapshot.Accounts = append(snapshot.Accounts, dto.ToEliteAccountResponse(r))
	}
	if !snapshot.TotalStarting.IsZero() {
		snapshot.TotalProfitPercent = snapshot.TotalProfit.Div(snapshot.TotalStarting).Mul(decimal.NewFromInt(100))
	}
	snapshot.TotalStarting = snapshot.TotalStarting.Round(2)
	snapshot.TotalEnding = snapshot.TotalEnding.Round(2)
	snapshot.TotalProfit = snapshot.TotalProfit.Round(2)
	snapshot.TotalProfitPercent = snapshot.TotalProfitPercent.Round(2)
	snapshot.TotalRemuneration = snapshot.TotalRemuneration.Round(2)
	snapshot.TotalCompound = snapshot.TotalCompound.Round(2)
	snapshot.TotalTransfer = snapshot.TotalTransfer.Round(2)
	return snapshot, nil
}

func (s *monthlyService) OpenMonth(ctx context.Context, portfolioID string, month domain.MonthKey) error {
	if !month.IsValid() {
		return fmt.Errorf("invalid month %q: %w", month, apperrors.ErrValidation)
	}
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return err
	}
	closed, err := s.monthlyRepo.IsMonthClosed(ctx, portfolioID, month)
	if err != nil {
		return fmt.Errorf("failed to check month state: %w", err)
	}
	if closed {
		return fmt.Errorf("cannot reopen month %s: %w", month, apperrors.ErrMonthClosed)
	}

	states, _, err := s.resolveAccountStates(ctx, portfolioID, month)
	if err != nil {
		return err
	}

	now := s.now()
	records := make([]domain.MonthlyAccountRecord, 0, len(states))
	for _, state := range states {
		starting := state.CurrentBalance
		if state.HasStartingBalance {
			starting = state.StartingBalance
		}
		records = append(records, domain.MonthlyAccountRecord{
			PortfolioID:     portfolioID,
			AccountID:       state.AccountID,
			AccountName:     state.Name,
			Month:           month,
			LotFactor:       state.LotFactor,
			StartingBalance: starting,
			Currency:        state.Currency,
			CreatedAt:       now,
		})
	}
	if err := s.monthlyRepo.OpenMonth(ctx, portfolioID, month, records); err != nil {
		s.LogError(ctx, err, "Failed to open month",
			slog.String("portfolio_id", portfolioID),
			slog.String("month", string(month)))
		return fmt.Errorf("failed to open month: %w", err)
	}
	s.LogInfo(ctx, "Month opened",
		slog.String("portfolio_id", portfolioID),
		slog.String("month", string(month)),
		slog.Int("accounts", len(records)))
	return nil
}

func (s *monthlyService) UpdateStartingBalance(ctx context.Context, portfolioID string, accountID int64, startingBalance decimal.Decimal) error {
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return err
	}

	month := domain.MonthKeyOf(s.now())
	closed, err := s.monthlyRepo.IsMonthClosed(ctx, portfolioID, month)
	if err != nil {
		return fmt.Errorf("failed to check month state: %w", err)
	}
	if closed {
		return fmt.Errorf("month %s: %w", month, apperrors.ErrMonthClosed)
	}

	if err := s.monthlyRepo.UpsertStartingBalance(ctx, portfolioID, month, accountID, startingBalance); err != nil {
		s.LogError(ctx, err, "Failed to override starting balance",
			slog.Int64("account_id", accountID))
		return fmt.Errorf("failed to override starting balance: %w", err)
	}
	s.LogInfo(ctx, "Starting balance overridden",
		slog.String("portfolio_id", portfolioID),
		slog.Int64("account_id", accountID),
		slog.String("month", string(month)))
	return nil
}

func (s *monthlyService) UpdateWithdrawals(ctx context.Context, portfolioID string, month domain.MonthKey, req dto.BulkWithdrawalRequest) (int, error) {
	if !month.IsValid() {
		return 0, fmt.Errorf("invalid month %q: %w", month, apperrors.ErrValidation)
	}
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return 0, err
	}
	closed, err := s.monthlyRepo.IsMonthClosed(ctx, portfolioID, month)
	if err != nil {
		return 0, fmt.Errorf("failed to check month state: %w", err)
	}
	if closed {
		return 0, fmt.Errorf("month %s: %w", month, apperrors.ErrMonthClosed)
	}

	updated := 0
	for _, w := range req.Withdrawals {
		if err := s.monthlyRepo.UpdateWithdrawal(ctx, portfolioID, month, w.AccountID, w.Withdrawal, w.Note); err != nil {
			s.LogError(ctx, err, "Failed to update withdrawal",
				slog.Int64("account_id", w.AccountID),
				slog.String("month", string(month)))
			return updated, fmt.Errorf("failed to update withdrawal for account %d: %w", w.AccountID, err)
		}
		updated++
	}
	return updated, nil
}

func (s *monthlyService) CloseMonth(ctx context.Context, portfolioID string, month domain.MonthKey) (*dto.CloseMonthResult, error) {
	if !month.IsValid() {
		return nil, fmt.Errorf("invalid month %q: %w", month, apperrors.ErrValidation)
	}
	if month != domain.MonthKeyOf(s.now()) {
		return nil, fmt.Errorf("only the current month can be closed: %w", apperrors.ErrValidation)
	}
	return s.CloseCurrentMonth(ctx, portfolioID)
}

func (s *monthlyService) CloseCurrentMonth(ctx context.Context, portfolioID string) (*dto.CloseMonthResult, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	month := domain.MonthKeyOf(now)
	closed, err := s.monthlyRepo.IsMonthClosed(ctx, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check month state: %w", err)
	}
	if closed {
		return nil, fmt.Errorf("month %s: %w", month, apperrors.ErrMonthClosed)
	}

	states, recorded, err := s.resolveAccountStates(ctx, portfolioID, month)
	if err != nil {
		return nil, err
	}
	result, err := s.closeMonthFromStates(ctx, portfolio, month, states, recorded, now)
	if err != nil {
		return nil, err
	}

	// Seed the next month so its starting balances carry forward from the
	// balances just frozen.
	if err := s.seedNextMonth(ctx, portfolioID, month, states, now); err != nil {
		s.LogError(ctx, err, "Failed to seed next month after close",
			slog.String("portfolio_id", portfolioID),
			slog.String("month", string(month.Next())))
	}

	s.LogInfo(ctx, "Month closed",
		slog.String("portfolio_id", portfolioID),
		slog.String("month", string(month)),
		slog.Int("accounts", result.AccountsClosed),
		slog.Bool("elite", result.IsElite))
	return result, nil
}

// closeMonthFromStates computes the distribution for the given states and
// persists it as the month's closed snapshot.
func (s *monthlyService) closeMonthFromStates(
	ctx context.Context,
	portfolio *domain.Portfolio,
	month domain.MonthKey,
	states []accounting.AccountState,
	recorded map[int64]domain.MonthlyAccountRecord,
	now time.Time,
) (*dto.CloseMonthResult, error) {
	portfolioID := portfolio.PortfolioID
	preview, err := accounting.ComputePreview(portfolio.Type, states, now)
	if err != nil {
		return nil, err
	}

	result := &dto.CloseMonthResult{Month: month, IsElite: preview.IsElite}

	if preview.IsElite {
		records := make([]domain.EliteAccountRecord, len(preview.EliteAccounts))
		for i, r := range preview.EliteAccounts {
			r.Month = month
			r.IsClosed = true
			records[i] = r
		}
		if err := s.monthlyRepo.CloseEliteMonth(ctx, portfolioID, month, records, preview.Transfers); err != nil {
			s.LogError(ctx, err, "Failed to close tiered month",
				slog.String("portfolio_id", portfolioID),
				slog.String("month", string(month)))
			return nil, fmt.Errorf("failed to close month: %w", err)
		}
		result.AccountsClosed = len(records)
		result.Phase = preview.Phase
		result.PhaseName = preview.PhaseName
	} else {
		records := make([]domain.MonthlyAccountRecord, 0, len(preview.Accounts))
		for _, line := range preview.Accounts {
			record := domain.MonthlyAccountRecord{
				PortfolioID:         portfolioID,
				AccountID:           line.AccountID,
				AccountName:         line.AccountName,
				Month:               month,
				LotFactor:           line.LotFactor,
				StartingBalance:     line.StartingBalance,
				EndingBalance:       line.CurrentBalance,
				Profit:              line.MonthlyProfit,
				ProfitPercent:       line.ProfitPercent,
				Weight:              line.Weight,
				SuggestedWithdrawal: line.SuggestedWithdrawal,
				Currency:            line.Currency,
				IsClosed:            true,
				CreatedAt:           now,
			}
			// Operator overrides recorded while the month was open survive
			// the close untouched.
			if prior, ok := recorded[line.AccountID]; ok {
				record.ActualWithdrawal = prior.ActualWithdrawal
				record.Note = prior.Note
				record.CreatedAt = prior.CreatedAt
			}
			records = append(records, record)
		}
		if err := s.monthlyRepo.CloseMonth(ctx, portfolioID, month, records); err != nil {
			s.LogError(ctx, err, "Failed to close month",
				slog.String("portfolio_id", portfolioID),
				slog.String("month", string(month)))
			return nil, fmt.Errorf("failed to close month: %w", err)
		}
		result.AccountsClosed = len(records)
	}

	return result, nil
}

// seedNextMonth opens the following month with starting balances equal to
// the balances the close just recorded as ending.
func (s *monthlyService) seedNextMonth(ctx context.Context, portfolioID string, month domain.MonthKey, states []accounting.AccountState, now time.Time) error {
	next := month.Next()
	records := make([]domain.MonthlyAccountRecord, 0, len(states))
	for _, state := range states {
		records = append(records, domain.MonthlyAccountRecord{
			PortfolioID:     portfolioID,
			AccountID:       state.AccountID,
			AccountName:     state.Name,
			Month:           next,
			LotFactor:       state.LotFactor,
			StartingBalance: state.CurrentBalance,
			Currency:        state.Currency,
			CreatedAt:       now,
		})
	}
	return s.monthlyRepo.OpenMonth(ctx, portfolioID, next, records)
}

func (s *monthlyService) SyncStartingBalances(ctx context.Context, portfolioID string) (*dto.SyncResult, error) {
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return nil, err
	}
	if s.bridge == nil {
		return nil, fmt.Errorf("terminal bridge not configured: %w", apperrors.ErrUnavailable)
	}

	now := s.now()
	month := domain.MonthKeyOf(now)
	closed, err := s.monthlyRepo.IsMonthClosed(ctx, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check month state: %w", err)
	}
	if closed {
		return nil, fmt.Errorf("month %s: %w", month, apperrors.ErrMonthClosed)
	}

	assocs, err := s.portfolioRepo.FindPortfolioAccounts(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio accounts: %w", err)
	}
	accountIDs := make([]int64, len(assocs))
	for i, assoc := range assocs {
		accountIDs[i] = assoc.AccountID
	}
	monthStart, err := s.balanceHistoryRepo.BalancesAtMonthStart(ctx, accountIDs, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month-start balances: %w", err)
	}

	result := &dto.SyncResult{}
	for _, assoc := range assocs {
		info, err := s.bridge.FetchAccountInfo(ctx, assoc.AccountID)
		if err != nil {
			s.LogError(ctx, err, "Bridge fetch failed during sync",
				slog.Int64("account_id", assoc.AccountID))
			result.Errors = append(result.Errors, dto.SyncError{
				AccountID: assoc.AccountID,
				Error:     err.Error(),
			})
			continue
		}

		starting := info.Balance
		if point, ok := monthStart[assoc.AccountID]; ok {
			starting = point.Balance
		}
		if err := s.monthlyRepo.UpsertStartingBalance(ctx, portfolioID, month, assoc.AccountID, starting); err != nil {
			result.Errors = append(result.Errors, dto.SyncError{
				AccountID: assoc.AccountID,
				Error:     err.Error(),
			})
			continue
		}
		result.Synced = append(result.Synced, dto.SyncedAccount{
			AccountID:       assoc.AccountID,
			AccountName:     info.Name,
			StartingBalance: starting.Round(2),
			CurrentBalance:  info.Balance.Round(2),
			Profit:          info.Balance.Sub(starting).Round(2),
		})
	}
	s.LogInfo(ctx, "Starting balances synced",
		slog.String("portfolio_id", portfolioID),
		slog.String("month", string(month)),
		slog.Int("synced", len(result.Synced)),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}
