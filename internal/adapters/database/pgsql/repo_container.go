package pgsql

import (
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	portfolioRepo := newPgxPortfolioRepository(dbPool)
	monthlyRepo := newPgxMonthlyRepository(dbPool)
	accountCacheRepo := newPgxAccountCacheRepository(dbPool)
	balanceHistoryRepo := newPgxBalanceHistoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PortfolioRepo:      portfolioRepo,
		MonthlyRepo:        monthlyRepo,
		AccountCacheRepo:   accountCacheRepo,
		BalanceHistoryRepo: balanceHistoryRepo,
	}
}
