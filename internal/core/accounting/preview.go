package accounting

import (
	"time"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AccountState is the live input for one account in a preview computation:
// its association data plus the balances resolved by the caller. When no
// starting balance was recorded for the month, leave HasStartingBalance
// false and the engine degrades to a zero-profit line instead of failing.
type AccountState struct {
	AccountID          int64
	Name               string
	Currency           string
	LotFactor          float64
	StartingBalance    decimal.Decimal
	HasStartingBalance bool
	CurrentBalance     decimal.Decimal
}

// startingOrCurrent resolves the effective starting balance.
func (a AccountState) startingOrCurrent() decimal.Decimal {
	if a.HasStartingBalance {
		return a.StartingBalance
	}
	return a.CurrentBalance
}

// PreviewAccount is one account's line in a Standard-path preview.
type PreviewAccount struct {
	AccountID           int64           `json:"accountID"`
	AccountName         string          `json:"accountName"`
	LotFactor           float64         `json:"lotFactor"`
	StartingBalance     decimal.Decimal `json:"startingBalance"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	MonthlyProfit       decimal.Decimal `json:"monthlyProfit"`
	ProfitPercent       decimal.Decimal `json:"profitPercent"`
	Weight              decimal.Decimal `json:"weight"`
	SuggestedWithdrawal decimal.Decimal `json:"suggestedWithdrawal"`
	Currency            string          `json:"currency"`
}

// CurrentMonthPreview is the unsaved projection of the open month. It is
// recomputed from live balances on every request and never persisted; only
// the close operation turns its figures into a snapshot.
type CurrentMonthPreview struct {
	Month         domain.MonthKey      `json:"month"`
	MonthStart    time.Time            `json:"monthStart"`
	CurrentDate   time.Time            `json:"currentDate"`
	DaysElapsed   int                  `json:"daysElapsed"`
	DaysInMonth   int                  `json:"daysInMonth"`
	PortfolioType domain.PortfolioType `json:"portfolioType"`
	IsElite       bool                 `json:"isElite"`

	TotalStarting      decimal.Decimal `json:"totalStarting"`
	TotalCurrent       decimal.Decimal `json:"totalCurrent"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	TotalProfitPercent decimal.Decimal `json:"totalProfitPercent"`

	// Standard path only.
	WithdrawalPercentage     decimal.Decimal  `json:"withdrawalPercentage"`
	TotalSuggestedWithdrawal decimal.Decimal  `json:"totalSuggestedWithdrawal"`
	Accounts                 []PreviewAccount `json:"accounts,omitempty"`

	// Elite path only.
	Phase             int                         `json:"phase,omitempty"`
	PhaseName         string                      `json:"phaseName,omitempty"`
	TotalRemuneration decimal.Decimal             `json:"totalRemuneration"`
	TotalCompound     decimal.Decimal             `json:"totalCompound"`
	TotalTransfer     decimal.Decimal             `json:"totalTransfer"`
	EliteAccounts     []domain.EliteAccountRecord `json:"eliteAccounts,omitempty"`
	Transfers         []domain.EliteTransfer      `json:"transfers,omitempty"`
}

// ComputePreview projects the current month's profit distribution for a
// portfolio from its accounts' live balances. Pure: identical inputs yield
// identical output. All figures are carried in full precision; rounding to
// currency minor units happens only at the presentation boundary.
func ComputePreview(portfolioType domain.PortfolioType, accounts []AccountState, now time.Time) (*CurrentMonthPreview, error) {
	month := domain.MonthKeyOf(now)
	preview := &CurrentMonthPreview{
		Month:         month,
		MonthStart:    month.Start(),
		CurrentDate:   now,
		DaysElapsed:   now.Day(),
		DaysInMonth:   month.Days(),
		PortfolioType: portfolioType,
		IsElite:       UsesEliteAlgorithm(portfolioType),
	}

	for _, a := range accounts {
		starting := a.startingOrCurrent()
		preview.TotalStarting = preview.TotalStarting.Add(starting)
		preview.TotalCurrent = preview.TotalCurrent.Add(a.CurrentBalance)
		preview.TotalProfit = preview.TotalProfit.Add(a.CurrentBalance.Sub(starting))
	}
	preview.TotalProfitPercent = percentOf(preview.TotalProfit, preview.TotalStarting)

	if preview.IsElite {
		result, err := DistributeElite(accounts, preview.TotalCurrent)
		if err != nil {
			return nil, err
		}
		preview.Phase = result.Phase
		preview.PhaseName = PhaseName(result.Phase)
		preview.TotalRemuneration = result.TotalRemuneration
		preview.TotalCompound = result.TotalCompound
		preview.TotalTransfer = result.TotalTransfer
		preview.EliteAccounts = result.Accounts
		preview.Transfers = result.Transfers
		return preview, nil
	}

	pct, err := WithdrawalPercentage(portfolioType)
	if err != nil {
		return nil, err
	}
	preview.WithdrawalPercentage = pct

	// Never withdraw against a loss.
	if preview.TotalProfit.IsPositive() {
		preview.TotalSuggestedWithdrawal = preview.TotalProfit.Mul(pct).Div(hundred)
	} else {
		preview.TotalSuggestedWithdrawal = decimal.Zero
	}

	totalWeight := standardTotalWeight(portfolioType, accounts)

	preview.Accounts = make([]PreviewAccount, 0, len(accounts))
	for _, a := range accounts {
		starting := a.startingOrCurrent()
		profit := a.CurrentBalance.Sub(starting)
		weight := standardWeight(portfolioType, a, starting, totalWeight)

		preview.Accounts = append(preview.Accounts, PreviewAccount{
			AccountID:           a.AccountID,
			AccountName:         a.Name,
			LotFactor:           a.LotFactor,
			StartingBalance:     starting,
			CurrentBalance:      a.CurrentBalance,
			MonthlyProfit:       profit,
			ProfitPercent:       percentOf(profit, starting),
			Weight:              weight,
			SuggestedWithdrawal: preview.TotalSuggestedWithdrawal.Mul(weight),
			Currency:            a.Currency,
		})
	}
	return preview, nil
}

// standardTotalWeight sums the weighting base for the Standard path: lot
// factors for factor-restricted types, starting capital for Securise where
// no multiplier concept exists.
func standardTotalWeight(t domain.PortfolioType, accounts []AccountState) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if t == domain.Securise {
			total = total.Add(a.startingOrCurrent())
		} else {
			total = total.Add(decimal.NewFromFloat(a.LotFactor))
		}
	}
	return total
}

func standardWeight(t domain.PortfolioType, a AccountState, starting, totalWeight decimal.Decimal) decimal.Decimal {
	if totalWeight.IsZero() {
		return decimal.Zero
	}
	if t == domain.Securise {
		return starting.Div(totalWeight)
	}
	return decimal.NewFromFloat(a.LotFactor).Div(totalWeight)
}

// percentOf returns part/whole*100, or zero when whole is zero. Previews
// degrade instead of failing on empty inputs.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
