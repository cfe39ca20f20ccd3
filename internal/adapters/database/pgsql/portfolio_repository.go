package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPortfolioRepository struct {
	pool *pgxpool.Pool
}

// newPgxPortfolioRepository creates a new repository for portfolio data.
func newPgxPortfolioRepository(pool *pgxpool.Pool) portsrepo.PortfolioRepositoryFacade {
	return &PgxPortfolioRepository{pool: pool}
}

var _ portsrepo.PortfolioRepositoryFacade = (*PgxPortfolioRepository)(nil)

func (r *PgxPortfolioRepository) FindPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	query := `
		SELECT portfolio_id, name, type, client, created_at, updated_at
		FROM portefeuilles
		WHERE portfolio_id = $1;
	`
	var p domain.Portfolio
	err := r.pool.QueryRow(ctx, query, portfolioID).Scan(
		&p.PortfolioID,
		&p.Name,
		&p.Type,
		&p.Client,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find portfolio %s: %w", portfolioID, err)
	}
	return &p, nil
}

func (r *PgxPortfolioRepository) ListPortfolios(ctx context.Context, client string) ([]domain.Portfolio, error) {
	query := `
		SELECT portfolio_id, name, type, client, created_at, updated_at
		FROM portefeuilles
		WHERE $1 = '' OR client = $1
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, client)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	portfolios := make([]domain.Portfolio, 0)
	for rows.Next() {
		var p domain.Portfolio
		if err := rows.Scan(&p.PortfolioID, &p.Name, &p.Type, &p.Client, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio row: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio rows: %w", err)
	}
	return portfolios, nil
}

func (r *PgxPortfolioRepository) ListClients(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT client FROM portefeuilles ORDER BY client;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *PgxPortfolioRepository) FindPortfolioAccounts(ctx context.Context, portfolioID string) ([]domain.PortfolioAccount, error) {
	query := `
		SELECT portfolio_id, account_id, lot_factor
		FROM portefeuille_accounts
		WHERE portfolio_id = $1
		ORDER BY lot_factor DESC, account_id;
	`
	rows, err := r.pool.Query(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio accounts: %w", err)
	}
	defer rows.Close()

	assocs := make([]domain.PortfolioAccount, 0)
	for rows.Next() {
		var a domain.PortfolioAccount
		if err := rows.Scan(&a.PortfolioID, &a.AccountID, &a.LotFactor); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio account row: %w", err)
		}
		assocs = append(assocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio account rows: %w", err)
	}
	return assocs, nil
}

func (r *PgxPortfolioRepository) FindPortfolioForAccount(ctx context.Context, accountID int64) (string, error) {
	query := `SELECT portfolio_id FROM portefeuille_accounts WHERE account_id = $1;`
	var portfolioID string
	err := r.pool.QueryRow(ctx, query, accountID).Scan(&portfolioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unassigned accounts are a normal state, not an error.
			return "", nil
		}
		return "", fmt.Errorf("failed to find holder of account %d: %w", accountID, err)
	}
	return portfolioID, nil
}

func (r *PgxPortfolioRepository) ListUsedAccountIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT account_id FROM portefeuille_accounts ORDER BY account_id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list used accounts: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account ids: %w", err)
	}
	return ids, nil
}

func (r *PgxPortfolioRepository) SavePortfolio(ctx context.Context, portfolio domain.Portfolio) error {
	query := `
		INSERT INTO portefeuilles (portfolio_id, name, type, client, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		portfolio.PortfolioID,
		portfolio.Name,
		portfolio.Type,
		portfolio.Client,
		portfolio.CreatedAt,
		portfolio.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: portfolio %s already exists", apperrors.ErrDuplicate, portfolio.PortfolioID)
		}
		return fmt.Errorf("failed to save portfolio %s: %w", portfolio.PortfolioID, err)
	}
	return nil
}

func (r *PgxPortfolioRepository) UpdatePortfolio(ctx context.Context, portfolio domain.Portfolio) error {
	query := `
		UPDATE portefeuilles
		SET name = $2, type = $3, client = $4, updated_at = $5
		WHERE portfolio_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		portfolio.PortfolioID,
		portfolio.Name,
		portfolio.Type,
		portfolio.Client,
		portfolio.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio %s: %w", portfolio.PortfolioID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	// Account associations, monthly records and transfers cascade via FK.
	query := `DELETE FROM portefeuilles WHERE portfolio_id = $1;`
	tag, err := r.pool.Exec(ctx, query, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio %s: %w", portfolioID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPortfolioRepository) UpsertAccount(ctx context.Context, assoc domain.PortfolioAccount) error {
	query := `
		INSERT INTO portefeuille_accounts (portfolio_id, account_id, lot_factor)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id)
		DO UPDATE SET portfolio_id = EXCLUDED.portfolio_id, lot_factor = EXCLUDED.lot_factor;
	`
	_, err := r.pool.Exec(ctx, query, assoc.PortfolioID, assoc.AccountID, assoc.LotFactor)
	if err != nil {
		return fmt.Errorf("failed to upsert account %d on portfolio %s: %w", assoc.AccountID, assoc.PortfolioID, err)
	}
	return nil
}

func (r *PgxPortfolioRepository) RemoveAccount(ctx context.Context, portfolioID string, accountID int64) error {
	query := `DELETE FROM portefeuille_accounts WHERE portfolio_id = $1 AND account_id = $2;`
	tag, err := r.pool.Exec(ctx, query, portfolioID, accountID)
	if err != nil {
		return fmt.Errorf("failed to remove account %d from portfolio %s: %w", accountID, portfolioID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
