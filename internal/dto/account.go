package dto

import (
	"time"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/GerardFevill/trade-vision/internal/utils"
	"github.com/shopspring/decimal"
)

// AccountSummaryResponse defines the data returned for a cached account.
// Amounts are rounded to currency minor units here, at the presentation
// boundary; stored values keep full precision.
type AccountSummaryResponse struct {
	AccountID        int64           `json:"accountID"`
	Name             string          `json:"name"`
	Broker           string          `json:"broker"`
	Server           string          `json:"server"`
	Client           string          `json:"client"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balanceFormatted"`
	Equity           decimal.Decimal `json:"equity"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitPercent    decimal.Decimal `json:"profitPercent"`
	Drawdown         decimal.Decimal `json:"drawdown"`
	Trades           int             `json:"trades"`
	WinRate          decimal.Decimal `json:"winRate"`
	Currency         string          `json:"currency"`
	Leverage         int             `json:"leverage"`
	Connected        bool            `json:"connected"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ToAccountSummaryResponse converts a domain.AccountSummary to its DTO.
func ToAccountSummaryResponse(a *domain.AccountSummary) AccountSummaryResponse {
	return AccountSummaryResponse{
		AccountID:        a.AccountID,
		Name:             a.Name,
		Broker:           a.Broker,
		Server:           a.Server,
		Client:           a.Client,
		Balance:          a.Balance.Round(2),
		BalanceFormatted: utils.FormatMoney(a.Balance, a.Currency),
		Equity:           a.Equity.Round(2),
		Profit:           a.Profit.Round(2),
		ProfitPercent:    a.ProfitPercent.Round(2),
		Drawdown:         a.Drawdown.Round(2),
		Trades:           a.Trades,
		WinRate:          a.WinRate.Round(2),
		Currency:         a.Currency,
		Leverage:         a.Leverage,
		Connected:        a.Connected,
		UpdatedAt:        a.UpdatedAt,
	}
}

// ToListAccountSummaryResponse converts a slice of summaries.
func ToListAccountSummaryResponse(accounts []domain.AccountSummary) []AccountSummaryResponse {
	res := make([]AccountSummaryResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountSummaryResponse(&accounts[i])
	}
	return res
}

// BalancePointResponse is one balance history observation.
type BalancePointResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	Equity    decimal.Decimal `json:"equity"`
	Timestamp time.Time       `json:"timestamp"`
}

// ToBalanceHistoryResponse converts balance points for one account.
func ToBalanceHistoryResponse(points []domain.BalancePoint) []BalancePointResponse {
	res := make([]BalancePointResponse, len(points))
	for i, p := range points {
		res[i] = BalancePointResponse{
			Balance:   p.Balance.Round(2),
			Equity:    p.Equity.Round(2),
			Timestamp: p.Timestamp,
		}
	}
	return res
}

// RefreshResult reports the outcome of an explicit cache refresh.
type RefreshResult struct {
	Refreshed int `json:"refreshed"`
}
