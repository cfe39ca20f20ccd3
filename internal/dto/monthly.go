package dto

import (
	"github.com/GerardFevill/trade-vision/internal/core/accounting"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateStartingBalanceRequest overrides one account's starting balance for
// the current month.
type UpdateStartingBalanceRequest struct {
	AccountID       int64           `json:"accountID" binding:"required"`
	StartingBalance decimal.Decimal `json:"startingBalance" binding:"required"`
}

// WithdrawalUpdate is one (account, withdrawal) override.
type WithdrawalUpdate struct {
	AccountID  int64           `json:"accountID" binding:"required"`
	Withdrawal decimal.Decimal `json:"withdrawal"`
	Note       *string         `json:"note"`
}

// BulkWithdrawalRequest applies several withdrawal overrides at once.
type BulkWithdrawalRequest struct {
	Withdrawals []WithdrawalUpdate `json:"withdrawals" binding:"required,min=1,dive"`
}

// MonthlyAccountRecordResponse is one account's line in a snapshot response.
type MonthlyAccountRecordResponse struct {
	AccountID           int64           `json:"accountID"`
	AccountName         string          `json:"accountName"`
	LotFactor           float64         `json:"lotFactor"`
	StartingBalance     decimal.Decimal `json:"startingBalance"`
	EndingBalance       decimal.Decimal `json:"endingBalance"`
	Profit              decimal.Decimal `json:"profit"`
	ProfitPercent       decimal.Decimal `json:"profitPercent"`
	Weight              decimal.Decimal `json:"weight"`
	SuggestedWithdrawal decimal.Decimal `json:"suggestedWithdrawal"`
	ActualWithdrawal    decimal.Decimal `json:"actualWithdrawal"`
	Note                string          `json:"note,omitempty"`
	Currency            string          `json:"currency"`
}

// MonthlySnapshotResponse is a persisted month with totals and records.
type MonthlySnapshotResponse struct {
	Month              domain.MonthKey                `json:"month"`
	TotalStarting      decimal.Decimal                `json:"totalStarting"`
	TotalEnding        decimal.Decimal                `json:"totalEnding"`
	TotalProfit        decimal.Decimal                `json:"totalProfit"`
	TotalProfitPercent decimal.Decimal                `json:"totalProfitPercent"`
	TotalWithdrawal    decimal.Decimal                `json:"totalWithdrawal"`
	Accounts           []MonthlyAccountRecordResponse `json:"accounts"`
	IsClosed           bool                           `json:"isClosed"`
}

// ToMonthlySnapshotResponse converts a domain snapshot, rounding amounts to
// currency minor units and weights to four places.
func ToMonthlySnapshotResponse(s *domain.MonthlySnapshot) MonthlySnapshotResponse {
	accounts := make([]MonthlyAccountRecordResponse, len(s.Accounts))
	for i, r := range s.Accounts {
		accounts[i] = MonthlyAccountRecordResponse{
			AccountID:           r.AccountID,
			AccountName:         r.AccountName,
			LotFactor:           r.LotFactor,
			StartingBalance:     r.StartingBalance.Round(2),
			EndingBalance:       r.EndingBalance.Round(2),
			Profit:              r.Profit.Round(2),
			ProfitPercent:       r.ProfitPercent.Round(2),
			Weight:              r.Weight.Round(4),
			SuggestedWithdrawal: r.SuggestedWithdrawal.Round(2),
			ActualWithdrawal:    r.ActualWithdrawal.Round(2),
			Note:                r.Note,
			Currency:            r.Currency,
		}
	}
	return MonthlySnapshotResponse{
		Month:              s.Month,
		TotalStarting:      s.TotalStarting.Round(2),
		TotalEnding:        s.TotalEnding.Round(2),
		TotalProfit:        s.TotalProfit.Round(2),
		TotalProfitPercent: s.TotalProfitPercent.Round(2),
		TotalWithdrawal:    s.TotalWithdrawal.Round(2),
		Accounts:           accounts,
		IsClosed:           s.IsClosed,
	}
}

// EliteAccountResponse is one account's line in an Elite snapshot response.
type EliteAccountResponse struct {
	AccountID       int64             `json:"accountID"`
	AccountName     string            `json:"accountName"`
	LotFactor       float64           `json:"lotFactor"`
	Level           domain.EliteLevel `json:"level"`
	StartingBalance decimal.Decimal   `json:"startingBalance"`
	EndingBalance   decimal.Decimal   `json:"endingBalance"`
	MonthlyProfit   decimal.Decimal   `json:"monthlyProfit"`
	ProfitPercent   decimal.Decimal   `json:"profitPercent"`
	Remuneration    decimal.Decimal   `json:"remuneration"`
	RemunerationPct decimal.Decimal   `json:"remunerationPct"`
	Compound        decimal.Decimal   `json:"compound"`
	CompoundPct     decimal.Decimal   `json:"compoundPct"`
	Transfer        decimal.Decimal   `json:"transfer"`
	TransferPct     decimal.Decimal   `json:"transferPct"`
	Currency        string            `json:"currency"`
}

// EliteTransferResponse is one audited level transfer.
type EliteTransferResponse struct {
	FromLevel   domain.EliteLevel `json:"fromLevel"`
	ToLevel     domain.EliteLevel `json:"toLevel"`
	Amount      decimal.Decimal   `json:"amount"`
	FromAccount string            `json:"fromAccount"`
	ToAccount   string            `json:"toAccount"`
}

// EliteSnapshot is the Elite variant of a persisted month.
type EliteSnapshot struct {
	Month              domain.MonthKey         `json:"month"`
	IsClosed           bool                    `json:"isClosed"`
	TotalStarting      decimal.Decimal         `json:"totalStarting"`
	TotalEnding        decimal.Decimal         `json:"totalEnding"`
	TotalProfit        decimal.Decimal         `json:"totalProfit"`
	TotalProfitPercent decimal.Decimal         `json:"totalProfitPercent"`
	TotalRemuneration  decimal.Decimal         `json:"totalRemuneration"`
	TotalCompound      decimal.Decimal         `json:"totalCompound"`
	TotalTransfer      decimal.Decimal         `json:"totalTransfer"`
	Accounts           []EliteAccountResponse  `json:"accounts"`
	Transfers          []EliteTransferResponse `json:"transfers"`
}

// ToEliteAccountResponse converts one Elite record with presentation rounding.
func ToEliteAccountResponse(r *domain.EliteAccountRecord) EliteAccountResponse {
	return EliteAccountResponse{
		AccountID:       r.AccountID,
		AccountName:     r.AccountName,
		LotFactor:       r.LotFactor,
		Level:           r.Level,
		StartingBalance: r.StartingBalance.Round(2),
		EndingBalance:   r.EndingBalance.Round(2),
		MonthlyProfit:   r.MonthlyProfit.Round(2),
		ProfitPercent:   r.ProfitPercent.Round(2),
		Remuneration:    r.Remuneration.Round(2),
		RemunerationPct: r.RemunerationPct,
		Compound:        r.Compound.Round(2),
		CompoundPct:     r.CompoundPct,
		Transfer:        r.Transfer.Round(2),
		TransferPct:     r.TransferPct,
		Currency:        r.Currency,
	}
}

// ToEliteTransferResponses converts transfer records with rounding.
func ToEliteTransferResponses(transfers []domain.EliteTransfer) []EliteTransferResponse {
	res := make([]EliteTransferResponse, len(transfers))
	for i, t := range transfers {
		res[i] = EliteTransferResponse{
			FromLevel:   t.FromLevel,
			ToLevel:     t.ToLevel,
			Amount:      t.Amount.Round(2),
			FromAccount: t.FromAccount,
			ToAccount:   t.ToAccount,
		}
	}
	return res
}

// CloseMonthResult reports a successful month close.
type CloseMonthResult struct {
	Month          domain.MonthKey `json:"month"`
	AccountsClosed int             `json:"accountsClosed"`
	IsElite        bool            `json:"isElite"`
	Phase          int             `json:"phase,omitempty"`
	PhaseName      string          `json:"phaseName,omitempty"`
}

// SyncedAccount reports one account whose starting balance was re-derived
// from the bridge.
type SyncedAccount struct {
	AccountID       int64           `json:"accountID"`
	AccountName     string          `json:"accountName"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	Profit          decimal.Decimal `json:"profit"`
}

// SyncError reports one account the bridge could not serve.
type SyncError struct {
	AccountID int64  `json:"accountID"`
	Error     string `json:"error"`
}

// SyncResult reports the outcome of a starting-balance sync.
type SyncResult struct {
	Synced []SyncedAccount `json:"synced"`
	Errors []SyncError     `json:"errors"`
}

// PreviewAccountResponse is one Standard-path preview line, rounded.
type PreviewAccountResponse struct {
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

// CurrentMonthPreviewResponse is the wire form of a preview. Rounding to
// two decimals happens here and only here; the engine's full-precision
// figures are never truncated before aggregation.
type CurrentMonthPreviewResponse struct {
	Month         domain.MonthKey      `json:"month"`
	MonthStart    string               `json:"monthStart"`
	CurrentDate   string               `json:"currentDate"`
	DaysElapsed   int                  `json:"daysElapsed"`
	DaysInMonth   int                  `json:"daysInMonth"`
	PortfolioType domain.PortfolioType `json:"portfolioType"`
	IsElite       bool                 `json:"isElite"`

	TotalStarting      decimal.Decimal `json:"totalStarting"`
	TotalCurrent       decimal.Decimal `json:"totalCurrent"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	TotalProfitPercent decimal.Decimal `json:"totalProfitPercent"`

	WithdrawalPercentage     decimal.Decimal          `json:"withdrawalPercentage,omitempty"`
	TotalSuggestedWithdrawal decimal.Decimal          `json:"totalSuggestedWithdrawal"`
	Accounts                 []PreviewAccountResponse `json:"accounts,omitempty"`

	Phase             int                     `json:"phase,omitempty"`
	PhaseName         string                  `json:"phaseName,omitempty"`
	TotalRemuneration decimal.Decimal         `json:"totalRemuneration"`
	TotalCompound     decimal.Decimal         `json:"totalCompound"`
	TotalTransfer     decimal.Decimal         `json:"totalTransfer"`
	EliteAccounts     []EliteAccountResponse  `json:"eliteAccounts,omitempty"`
	Transfers         []EliteTransferResponse `json:"transfers,omitempty"`
}

// ToCurrentMonthPreviewResponse converts an engine preview to wire form.
func ToCurrentMonthPreviewResponse(p *accounting.CurrentMonthPreview) CurrentMonthPreviewResponse {
	res := CurrentMonthPreviewResponse{
		Month:         p.Month,
		MonthStart:    p.MonthStart.Format("2006-01-02"),
		CurrentDate:   p.CurrentDate.Format("2006-01-02"),
		DaysElapsed:   p.DaysElapsed,
		DaysInMonth:   p.DaysInMonth,
		PortfolioType: p.PortfolioType,
		IsElite:       p.IsElite,

		TotalStarting:      p.TotalStarting.Round(2),
		TotalCurrent:       p.TotalCurrent.Round(2),
		TotalProfit:        p.TotalProfit.Round(2),
		TotalProfitPercent: p.TotalProfitPercent.Round(2),

		WithdrawalPercentage:     p.WithdrawalPercentage,
		TotalSuggestedWithdrawal: p.TotalSuggestedWithdrawal.Round(2),

		Phase:             p.Phase,
		PhaseName:         p.PhaseName,
		TotalRemuneration: p.TotalRemuneration.Round(2),
		TotalCompound:     p.TotalCompound.Round(2),
		TotalTransfer:     p.TotalTransfer.Round(2),
	}
	for i := range p.Accounts {
		a := &p.Accounts[i]
		res.Accounts = append(res.Accounts, PreviewAccountResponse{
			AccountID:           a.AccountID,
			AccountName:         a.AccountName,
			LotFactor:           a.LotFactor,
			StartingBalance:     a.StartingBalance.Round(2),
			CurrentBalance:      a.CurrentBalance.Round(2),
			MonthlyProfit:       a.MonthlyProfit.Round(2),
			ProfitPercent:       a.ProfitPercent.Round(2),
			Weight:              a.Weight.Round(4),
			SuggestedWithdrawal: a.SuggestedWithdrawal.Round(2),
			Currency:            a.Currency,
		})
	}
	for i := range p.EliteAccounts {
		res.EliteAccounts = append(res.EliteAccounts, ToEliteAccountResponse(&p.EliteAccounts[i]))
	}
	res.Transfers = ToEliteTransferResponses(p.Transfers)
	return res
}

// MonthlyHistoryResponse lists the months with records for a portfolio.
type MonthlyHistoryResponse struct {
	Months []domain.MonthKey `json:"months"`
}
