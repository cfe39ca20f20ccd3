package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxMonthlyRepository struct {
	BaseRepository
}

// newPgxMonthlyRepository creates a new repository for monthly accounting records.
func newPgxMonthlyRepository(pool *pgxpool.Pool) portsrepo.MonthlyRepositoryFacade {
	return &PgxMonthlyRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.MonthlyRepositoryFacade = (*PgxMonthlyRepository)(nil)

func (r *PgxMonthlyRepository) FindMonthlyRecords(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.MonthlyAccountRecord, error) {
	query := `
		SELECT portfolio_id, account_id, account_name, month, lot_factor,
		       starting_balance, ending_balance, profit, profit_percent, weight,
		       suggested_withdrawal, actual_withdrawal, note, currency, is_closed, created_at
		FROM portefeuille_monthly_records
		WHERE portfolio_id = $1 AND month = $2
		ORDER BY lot_factor DESC, account_id;
	`
	rows, err := r.Pool.Query(ctx, query, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MonthlyAccountRecord, 0)
	for rows.Next() {
		var rec domain.MonthlyAccountRecord
		var note sql.NullString
		if err := rows.Scan(
			&rec.PortfolioID, &rec.AccountID, &rec.AccountName, &rec.Month, &rec.LotFactor,
			&rec.StartingBalance, &rec.EndingBalance, &rec.Profit, &rec.ProfitPercent, &rec.Weight,
			&rec.SuggestedWithdrawal, &rec.ActualWithdrawal, &note, &rec.Currency, &rec.IsClosed, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly record: %w", err)
		}
		rec.Note = note.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly records: %w", err)
	}
	return records, nil
}

func (r *PgxMonthlyRepository) ListMonths(ctx context.Context, portfolioID string) ([]domain.MonthKey, error) {
	query := `
		SELECT DISTINCT month
		FROM portefeuille_monthly_records
		WHERE portfolio_id = $1
		ORDER BY month DESC;
	`
	rows, err := r.Pool.Query(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list months: %w", err)
	}
	defer rows.Close()

	months := make([]domain.MonthKey, 0)
	for rows.Next() {
		var m domain.MonthKey
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating months: %w", err)
	}
	return months, nil
}

func (r *PgxMonthlyRepository) IsMonthClosed(ctx context.Context, portfolioID string, month domain.MonthKey) (bool, error) {
	query := `
		SELECT COALESCE(bool_or(is_closed), FALSE)
		FROM portefeuille_monthly_records
		WHERE portfolio_id = $1 AND month = $2;
	`
	var closed bool
	if err := r.Pool.QueryRow(ctx, query, portfolioID, month).Scan(&closed); err != nil {
		return false, fmt.Errorf("failed to check month state: %w", err)
	}
	return closed, nil
}

func (r *PgxMonthlyRepository) FindEliteRecords(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.EliteAccountRecord, error) {
	query := `
		SELECT account_id, account_name, month, lot_factor, level,
		       starting_balance, ending_balance, profit, profit_percent,
		       remuneration, remuneration_pct, compound, compound_pct,
		       transfer, transfer_pct, currency, is_closed
		FROM portefeuille_monthly_records
		WHERE portfolio_id = $1 AND month = $2 AND level IS NOT NULL
		ORDER BY lot_factor DESC, account_id;
	`
	rows, err := r.Pool.Query(ctx, query, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query tiered records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.EliteAccountRecord, 0)
	for rows.Next() {
		var rec domain.EliteAccountRecord
		if err := rows.Scan(
			&rec.AccountID, &rec.AccountName, &rec.Month, &rec.LotFactor, &rec.Level,
			&rec.StartingBalance, &rec.EndingBalance, &rec.MonthlyProfit, &rec.ProfitPercent,
			&rec.Remuneration, &rec.RemunerationPct, &rec.Compound, &rec.CompoundPct,
			&rec.Transfer, &rec.TransferPct, &rec.Currency, &rec.IsClosed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tiered record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tiered records: %w", err)
	}
	return records, nil
}

func (r *PgxMonthlyRepository) FindEliteTransfers(ctx context.Context, portfolioID string, month domain.MonthKey) ([]domain.EliteTransfer, error) {
	query := `
		SELECT from_level, to_level, amount, from_account, to_account
		FROM portefeuille_elite_transfers
		WHERE portfolio_id = $1 AND month = $2
		ORDER BY transfer_id;
	`
	rows, err := r.Pool.Query(ctx, query, portfolioID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier transfers: %w", err)
	}
	defer rows.Close()

	transfers := make([]domain.EliteTransfer, 0)
	for rows.Next() {
		var t domain.EliteTransfer
		if err := rows.Scan(&t.FromLevel, &t.ToLevel, &t.Amount, &t.FromAccount, &t.ToAccount); err != nil {
			return nil, fmt.Errorf("failed to scan tier transfer: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tier transfers: %w", err)
	}
	return transfers, nil
}

func (r *PgxMonthlyRepository) OpenMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.MonthlyAccountRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Existing rows win: an open never clobbers overrides already made.
	query := `
		INSERT INTO portefeuille_monthly_records
			(portfolio_id, account_id, account_name, month, lot_factor, starting_balance, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (portfolio_id, account_id, month) DO NOTHING;
	`
	for _, rec := range records {
		if _, err := tx.Exec(ctx, query,
			portfolioID, rec.AccountID, rec.AccountName, month, rec.LotFactor,
			rec.StartingBalance, rec.Currency, rec.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to open month for account %d: %w", rec.AccountID, err)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxMonthlyRepository) UpsertStartingBalance(ctx context.Context, portfolioID string, month domain.MonthKey, accountID int64, startingBalance decimal.Decimal) error {
	query := `
		INSERT INTO portefeuille_monthly_records
			(portfolio_id, account_id, month, starting_balance, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (portfolio_id, account_id, month)
		DO UPDATE SET starting_balance = EXCLUDED.starting_balance
		WHERE portefeuille_monthly_records.is_closed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, portfolioID, accountID, month, startingBalance)
	if err != nil {
		return fmt.Errorf("failed to upsert starting balance for account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("month %s: %w", month, apperrors.ErrMonthClosed)
	}
	return nil
}

func (r *PgxMonthlyRepository) UpdateWithdrawal(ctx context.Context, portfolioID string, month domain.MonthKey, accountID int64, withdrawal decimal.Decimal, note *string) error {
	query := `
		UPDATE portefeuille_monthly_records
		SET actual_withdrawal = $4, note = COALESCE($5, note)
		WHERE portfolio_id = $1 AND account_id = $2 AND month = $3 AND is_closed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, portfolioID, accountID, month, withdrawal, note)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal for account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no open record for account %d in month %s: %w", accountID, month, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMonthlyRepository) CloseMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.MonthlyAccountRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO portefeuille_monthly_records
			(portfolio_id, account_id, account_name, month, lot_factor,
			 starting_balance, ending_balance, profit, profit_percent, weight,
			 suggested_withdrawal, actual_withdrawal, note, currency, is_closed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE, $15)
		ON CONFLICT (portfolio_id, account_id, month)
		DO UPDATE SET
			account_name = EXCLUDED.account_name,
			lot_factor = EXCLUDED.lot_factor,
			starting_balance = EXCLUDED.starting_balance,
			ending_balance = EXCLUDED.ending_balance,
			profit = EXCLUDED.profit,
			profit_percent = EXCLUDED.profit_percent,
			weight = EXCLUDED.weight,
			suggested_withdrawal = EXCLUDED.suggested_withdrawal,
			actual_withdrawal = EXCLUDED.actual_withdrawal,
			note = EXCLUDED.note,
			currency = EXCLUDED.currency,
			is_closed = TRUE
		WHERE portefeuille_monthly_records.is_closed = FALSE;
	`
	for _, rec := range records {
		tag, err := tx.Exec(ctx, query,
			portfolioID, rec.AccountID, rec.AccountName, month, rec.LotFactor,
			rec.StartingBalance, rec.EndingBalance, rec.Profit, rec.ProfitPercent, rec.Weight,
			rec.SuggestedWithdrawal, rec.ActualWithdrawal, rec.Note, rec.Currency, rec.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to close month for account %d: %w", rec.AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("month %s: %w", month, apperrors.ErrMonthClosed)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxMonthlyRepository) CloseEliteMonth(ctx context.Context, portfolioID string, month domain.MonthKey, records []domain.EliteAccountRecord, transfers []domain.EliteTransfer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO portefeuille_monthly_records
			(portfolio_id, account_id, account_name, month, lot_factor, level,
			 starting_balance, ending_balance, profit, profit_percent,
			 remuneration, remuneration_pct, compound, compound_pct,
			 transfer, transfer_pct, currency, is_closed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, TRUE, NOW())
		ON CONFLICT (portfolio_id, account_id, month)
		DO UPDATE SET
			account_name = EXCLUDED.account_name,
			lot_factor = EXCLUDED.lot_factor,
			level = EXCLUDED.level,
			starting_balance = EXCLUDED.starting_balance,
			ending_balance = EXCLUDED.ending_balance,
			profit = EXCLUDED.profit,
			profit_percent = EXCLUDED.profit_percent,
			remuneration = EXCLUDED.remuneration,
			remuneration_pct = EXCLUDED.remuneration_pct,
			compound = EXCLUDED.compound,
			compound_pct = EXCLUDED.compound_pct,
			transfer = EXCLUDED.transfer,
			transfer_pct = EXCLUDED.transfer_pct,
			currency = EXCLUDED.currency,
			is_closed = TRUE
		WHERE portefeuille_monthly_records.is_closed = FALSE;
	`
	for _, rec := range records {
		tag, err := tx.Exec(ctx, query,
			portfolioID, rec.AccountID, rec.AccountName, month, rec.LotFactor, rec.Level,
			rec.StartingBalance, rec.EndingBalance, rec.MonthlyProfit, rec.ProfitPercent,
			rec.Remuneration, rec.RemunerationPct, rec.Compound, rec.CompoundPct,
			rec.Transfer, rec.TransferPct, rec.Currency,
		)
		if err != nil {
			return fmt.Errorf("failed to close tiered month for account %d: %w", rec.AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("month %s: %w", month, apperrors.ErrMonthClosed)
		}
	}

	// The audit transfers are regenerated wholesale with the close.
	if _, err := tx.Exec(ctx,
		`DELETE FROM portefeuille_elite_transfers WHERE portfolio_id = $1 AND month = $2;`,
		portfolioID, month,
	); err != nil {
		return fmt.Errorf("failed to clear tier transfers: %w", err)
	}
	transferQuery := `
		INSERT INTO portefeuille_elite_transfers
			(portfolio_id, month, from_level, to_level, amount, from_account, to_account)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, t := range transfers {
		if _, err := tx.Exec(ctx, transferQuery,
			portfolioID, month, t.FromLevel, t.ToLevel, t.Amount, t.FromAccount, t.ToAccount,
		); err != nil {
			return fmt.Errorf("failed to save tier transfer: %w", err)
		}
	}
	return r.Commit(ctx, tx)
}
