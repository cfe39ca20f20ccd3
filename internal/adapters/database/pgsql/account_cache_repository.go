package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountCacheRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountCacheRepository creates a new repository for cached account summaries.
func newPgxAccountCacheRepository(pool *pgxpool.Pool) portsrepo.AccountCacheRepositoryFacade {
	return &PgxAccountCacheRepository{pool: pool}
}

var _ portsrepo.AccountCacheRepositoryFacade = (*PgxAccountCacheRepository)(nil)

const accountSummaryColumns = `
	account_id, name, broker, server, client, balance, equity, profit,
	profit_percent, drawdown, trades, win_rate, currency, leverage, connected, updated_at`

func scanAccountSummary(row pgx.Row) (*domain.AccountSummary, error) {
	var a domain.AccountSummary
	err := row.Scan(
		&a.AccountID, &a.Name, &a.Broker, &a.Server, &a.Client,
		&a.Balance, &a.Equity, &a.Profit, &a.ProfitPercent, &a.Drawdown,
		&a.Trades, &a.WinRate, &a.Currency, &a.Leverage, &a.Connected, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAccountCacheRepository) ListAccountSummaries(ctx context.Context) ([]domain.AccountSummary, error) {
	query := `SELECT` + accountSummaryColumns + `
		FROM accounts_cache
		ORDER BY account_id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached accounts: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.AccountSummary, 0)
	for rows.Next() {
		a, err := scanAccountSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached account: %w", err)
		}
		summaries = append(summaries, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cached accounts: %w", err)
	}
	return summaries, nil
}

func (r *PgxAccountCacheRepository) FindAccountSummaryByID(ctx context.Context, accountID int64) (*domain.AccountSummary, error) {
	query := `SELECT` + accountSummaryColumns + `
		FROM accounts_cache
		WHERE account_id = $1;`
	a, err := scanAccountSummary(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cached account %d: %w", accountID, err)
	}
	return a, nil
}

func (r *PgxAccountCacheRepository) FindAccountSummariesByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.AccountSummary, error) {
	summaries := make(map[int64]domain.AccountSummary, len(accountIDs))
	if len(accountIDs) == 0 {
		return summaries, nil
	}
	query := `SELECT` + accountSummaryColumns + `
		FROM accounts_cache
		WHERE account_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAccountSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached account: %w", err)
		}
		summaries[a.AccountID] = *a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cached accounts: %w", err)
	}
	return summaries, nil
}

func (r *PgxAccountCacheRepository) UpsertAccountSummary(ctx context.Context, summary domain.AccountSummary) error {
	query := `
		INSERT INTO accounts_cache
			(account_id, name, broker, server, client, balance, equity, profit,
			 profit_percent, drawdown, trades, win_rate, currency, leverage, connected, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (account_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			broker = EXCLUDED.broker,
			server = EXCLUDED.server,
			client = EXCLUDED.client,
			balance = EXCLUDED.balance,
			equity = EXCLUDED.equity,
			profit = EXCLUDED.profit,
			profit_percent = EXCLUDED.profit_percent,
			drawdown = EXCLUDED.drawdown,
			trades = EXCLUDED.trades,
			win_rate = EXCLUDED.win_rate,
			currency = EXCLUDED.currency,
			leverage = EXCLUDED.leverage,
			connected = EXCLUDED.connected,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.pool.Exec(ctx, query,
		summary.AccountID, summary.Name, summary.Broker, summary.Server, summary.Client,
		summary.Balance, summary.Equity, summary.Profit, summary.ProfitPercent, summary.Drawdown,
		summary.Trades, summary.WinRate, summary.Currency, summary.Leverage, summary.Connected, summary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cached account %d: %w", summary.AccountID, err)
	}
	return nil
}
