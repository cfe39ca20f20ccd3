package services

import (
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly
// initialized dependencies. The bridge may be nil in setups without a
// terminal bridge; refresh and sync operations then fail with an
// unavailability error instead of panicking.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, bridge portssvc.TerminalBridgeSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Portfolio = NewPortfolioService(
		repos.PortfolioRepo,
		repos.AccountCacheRepo,
	)

	container.Monthly = NewMonthlyService(
		repos.PortfolioRepo,
		repos.MonthlyRepo,
		repos.AccountCacheRepo,
		repos.BalanceHistoryRepo,
		WithTerminalBridge(bridge),
	)

	container.AccountData = NewAccountDataService(
		repos.AccountCacheRepo,
		repos.BalanceHistoryRepo,
		bridge,
	)

	return container
}
