package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyAccountRecord is one account's line in a monthly snapshot.
// Once the month is closed the record is immutable; before the close the
// operator may override the starting balance and the actual withdrawal.
type MonthlyAccountRecord struct {
	PortfolioID         string          `json:"portfolioID"`
	AccountID           int64           `json:"accountID"`
	AccountName         string          `json:"accountName"`
	Month               MonthKey        `json:"month"`
	LotFactor           float64         `json:"lotFactor"`
	StartingBalance     decimal.Decimal `json:"startingBalance"`
	EndingBalance       decimal.Decimal `json:"endingBalance"`
	Profit              decimal.Decimal `json:"profit"`
	ProfitPercent       decimal.Decimal `json:"profitPercent"`
	Weight              decimal.Decimal `json:"weight"`
	SuggestedWithdrawal decimal.Decimal `json:"suggestedWithdrawal"`
	ActualWithdrawal    decimal.Decimal `json:"actualWithdrawal"`
	Note                string          `json:"note"`
	Currency            string          `json:"currency"`
	IsClosed            bool            `json:"isClosed"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// MonthlySnapshot is the persisted record of one accounting month for a
// portfolio: aggregate totals plus the ordered account records.
type MonthlySnapshot struct {
	PortfolioID        string                 `json:"portfolioID"`
	Month              MonthKey               `json:"month"`
	TotalStarting      decimal.Decimal        `json:"totalStarting"`
	TotalEnding        decimal.Decimal        `json:"totalEnding"`
	TotalProfit        decimal.Decimal        `json:"totalProfit"`
	TotalProfitPercent decimal.Decimal        `json:"totalProfitPercent"`
	TotalWithdrawal    decimal.Decimal        `json:"totalWithdrawal"`
	Accounts           []MonthlyAccountRecord `json:"accounts"`
	IsClosed           bool                   `json:"isClosed"`
}

// EliteLevel names one of the five Conservateur tiers, N5 (highest lot
// factor, highest risk) down to N1.
type EliteLevel string

const (
	LevelN5 EliteLevel = "N5"
	LevelN4 EliteLevel = "N4"
	LevelN3 EliteLevel = "N3"
	LevelN2 EliteLevel = "N2"
	LevelN1 EliteLevel = "N1"
)

// Rank orders levels numerically, N1=1 .. N5=5. Unknown levels rank 0.
func (l EliteLevel) Rank() int {
	switch l {
	case LevelN1:
		return 1
	case LevelN2:
		return 2
	case LevelN3:
		return 3
	case LevelN4:
		return 4
	case LevelN5:
		return 5
	}
	return 0
}

// EliteAccountRecord is one account's line in a Conservateur month: the
// monthly profit partitioned into remuneration, compound and transfer.
// The three parts always sum back to the monthly profit.
type EliteAccountRecord struct {
	AccountID       int64           `json:"accountID"`
	AccountName     string          `json:"accountName"`
	Month           MonthKey        `json:"month"`
	LotFactor       float64         `json:"lotFactor"`
	Level           EliteLevel      `json:"level"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	EndingBalance   decimal.Decimal `json:"endingBalance"`
	MonthlyProfit   decimal.Decimal `json:"monthlyProfit"`
	ProfitPercent   decimal.Decimal `json:"profitPercent"`
	Remuneration    decimal.Decimal `json:"remuneration"`
	RemunerationPct decimal.Decimal `json:"remunerationPct"`
	Compound        decimal.Decimal `json:"compound"`
	CompoundPct     decimal.Decimal `json:"compoundPct"`
	Transfer        decimal.Decimal `json:"transfer"`
	TransferPct     decimal.Decimal `json:"transferPct"`
	Currency        string          `json:"currency"`
	IsClosed        bool            `json:"isClosed"`
}

// EliteTransfer records money conceptually moved between tier levels during
// the monthly reconciliation. Purely computed, kept for audit.
type EliteTransfer struct {
	FromLevel   EliteLevel      `json:"fromLevel"`
	ToLevel     EliteLevel      `json:"toLevel"`
	Amount      decimal.Decimal `json:"amount"`
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
}
