package dto

import (
	"time"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePortfolioRequest defines the data needed to create a new portfolio.
type CreatePortfolioRequest struct {
	Name   string               `json:"name" binding:"required"`
	Type   domain.PortfolioType `json:"type" binding:"required,oneof=Securise Conservateur Modere Agressif"`
	Client string               `json:"client" binding:"required"`
}

// UpdatePortfolioRequest defines the data allowed for updating a portfolio.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePortfolioRequest struct {
	Name *string               `json:"name"`
	Type *domain.PortfolioType `json:"type" binding:"omitempty,oneof=Securise Conservateur Modere Agressif"`
}

// AttachAccountRequest defines the data for adding an account to a portfolio.
type AttachAccountRequest struct {
	AccountID int64   `json:"accountID" binding:"required"`
	LotFactor float64 `json:"lotFactor" binding:"gte=0"`
}

// PortfolioResponse defines the data returned for a portfolio.
type PortfolioResponse struct {
	PortfolioID string               `json:"portfolioID"`
	Name        string               `json:"name"`
	Type        domain.PortfolioType `json:"type"`
	Client      string               `json:"client"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToPortfolioResponse converts a domain.Portfolio to its response DTO.
func ToPortfolioResponse(p *domain.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		PortfolioID: p.PortfolioID,
		Name:        p.Name,
		Type:        p.Type,
		Client:      p.Client,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PortfolioSummary is one row in the portfolio list: identity plus
// aggregate balance facts from the account cache.
type PortfolioSummary struct {
	PortfolioID  string               `json:"portfolioID"`
	Name         string               `json:"name"`
	Type         domain.PortfolioType `json:"type"`
	Client       string               `json:"client"`
	TotalBalance decimal.Decimal      `json:"totalBalance"`
	TotalProfit  decimal.Decimal      `json:"totalProfit"`
	AccountCount int                  `json:"accountCount"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// PortfolioAccountDetail is one account association joined against the
// cached account summary. Account is nil when the cache has no entry.
type PortfolioAccountDetail struct {
	AccountID int64                  `json:"accountID"`
	LotFactor float64                `json:"lotFactor"`
	Account   *AccountSummaryResponse `json:"account,omitempty"`
}

// PortfolioDetail is the full portfolio view with accounts and totals.
type PortfolioDetail struct {
	PortfolioID      string                   `json:"portfolioID"`
	Name             string                   `json:"name"`
	Type             domain.PortfolioType     `json:"type"`
	Client           string                   `json:"client"`
	TotalBalance     decimal.Decimal          `json:"totalBalance"`
	TotalEquity      decimal.Decimal          `json:"totalEquity"`
	TotalProfit      decimal.Decimal          `json:"totalProfit"`
	AccountCount     int                      `json:"accountCount"`
	Accounts         []PortfolioAccountDetail `json:"accounts"`
	AvailableFactors []float64                `json:"availableFactors"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// PortfolioTypesResponse lists the known types with their lot factor tables.
type PortfolioTypesResponse struct {
	Types      map[domain.PortfolioType][]float64 `json:"types"`
	AllFactors []float64                          `json:"allFactors"`
}
