package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// balanceBucket is the sampling resolution of the history table. Repeated
// observations within one bucket overwrite instead of accumulating.
const balanceBucket = 15 * time.Minute

type PgxBalanceHistoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxBalanceHistoryRepository creates a new repository for balance history points.
func newPgxBalanceHistoryRepository(pool *pgxpool.Pool) portsrepo.BalanceHistoryRepositoryFacade {
	return &PgxBalanceHistoryRepository{pool: pool}
}

var _ portsrepo.BalanceHistoryRepositoryFacade = (*PgxBalanceHistoryRepository)(nil)

func (r *PgxBalanceHistoryRepository) BalancesAtMonthStart(ctx context.Context, accountIDs []int64, month domain.MonthKey) (map[int64]domain.BalancePoint, error) {
	points := make(map[int64]domain.BalancePoint, len(accountIDs))
	if len(accountIDs) == 0 {
		return points, nil
	}
	monthStart := month.Start()
	monthEnd := month.Next().Start()

	// Preferred: the last point recorded before the month began.
	before := `
		SELECT DISTINCT ON (account_id) account_id, balance, equity, recorded_at
		FROM account_balance_history
		WHERE account_id = ANY($1) AND recorded_at < $2
		ORDER BY account_id, recorded_at DESC;
	`
	if err := r.collectPoints(ctx, points, before, accountIDs, monthStart); err != nil {
		return nil, err
	}

	// Fallback for accounts whose history starts mid-month: the earliest
	// point within it.
	missing := make([]int64, 0)
	for _, id := range accountIDs {
		if _, ok := points[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return points, nil
	}
	within := `
		SELECT DISTINCT ON (account_id) account_id, balance, equity, recorded_at
		FROM account_balance_history
		WHERE account_id = ANY($1) AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY account_id, recorded_at ASC;
	`
	if err := r.collectPoints(ctx, points, within, missing, monthStart, monthEnd); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *PgxBalanceHistoryRepository) collectPoints(ctx context.Context, into map[int64]domain.BalancePoint, query string, args ...any) error {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query balance points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.BalancePoint
		if err := rows.Scan(&p.AccountID, &p.Balance, &p.Equity, &p.Timestamp); err != nil {
			return fmt.Errorf("failed to scan balance point: %w", err)
		}
		into[p.AccountID] = p
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating balance points: %w", err)
	}
	return nil
}

func (r *PgxBalanceHistoryRepository) History(ctx context.Context, accountID int64, days int) ([]domain.BalancePoint, error) {
	query := `
		SELECT account_id, balance, equity, recorded_at
		FROM account_balance_history
		WHERE account_id = $1 AND recorded_at >= NOW() - ($2 * INTERVAL '1 day')
		ORDER BY recorded_at;
	`
	rows, err := r.pool.Query(ctx, query, accountID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance history: %w", err)
	}
	defer rows.Close()

	points := make([]domain.BalancePoint, 0)
	for rows.Next() {
		var p domain.BalancePoint
		if err := rows.Scan(&p.AccountID, &p.Balance, &p.Equity, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan balance point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance history: %w", err)
	}
	return points, nil
}

func (r *PgxBalanceHistoryRepository) SaveBalancePoint(ctx context.Context, point domain.BalancePoint) error {
	query := `
		INSERT INTO account_balance_history (account_id, balance, equity, recorded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, recorded_at)
		DO UPDATE SET balance = EXCLUDED.balance, equity = EXCLUDED.equity;
	`
	bucketed := point.Timestamp.UTC().Truncate(balanceBucket)
	_, err := r.pool.Exec(ctx, query, point.AccountID, point.Balance, point.Equity, bucketed)
	if err != nil {
		return fmt.Errorf("failed to save balance point for account %d: %w", point.AccountID, err)
	}
	return nil
}

func (r *PgxBalanceHistoryRepository) PruneHistory(ctx context.Context, keepDays int) error {
	query := `
		DELETE FROM account_balance_history
		WHERE recorded_at < NOW() - ($1 * INTERVAL '1 day');
	`
	if _, err := r.pool.Exec(ctx, query, keepDays); err != nil {
		return fmt.Errorf("failed to prune balance history: %w", err)
	}
	return nil
}
