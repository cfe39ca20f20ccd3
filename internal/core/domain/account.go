package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSummary mirrors the account facts the Account Data Service keeps
// for each external trading account. The backend never computes these; they
// are cached from the terminal bridge and refreshed periodically.
type AccountSummary struct {
	AccountID     int64           `json:"accountID"` // Terminal login
	Name          string          `json:"name"`
	Broker        string          `json:"broker"`
	Server        string          `json:"server"`
	Client        string          `json:"client"`
	Balance       decimal.Decimal `json:"balance"`
	Equity        decimal.Decimal `json:"equity"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent decimal.Decimal `json:"profitPercent"`
	Drawdown      decimal.Decimal `json:"drawdown"`
	Trades        int             `json:"trades"`
	WinRate       decimal.Decimal `json:"winRate"`
	Currency      string          `json:"currency"`
	Leverage      int             `json:"leverage"`
	Connected     bool            `json:"connected"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// BalancePoint is one balance/equity observation for an account, used for
// month-start balance lookups and sparkline history.
type BalancePoint struct {
	AccountID int64           `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	Equity    decimal.Decimal `json:"equity"`
	Timestamp time.Time       `json:"timestamp"`
}
