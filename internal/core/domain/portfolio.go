package domain

import "time"

// PortfolioType classifies a portfolio into one of the four risk tiers.
// The type fixes the set of lot factors its accounts may carry, the default
// withdrawal percentage, and whether the Elite distribution applies.
type PortfolioType string

const (
	Securise     PortfolioType = "Securise"
	Conservateur PortfolioType = "Conservateur"
	Modere       PortfolioType = "Modere"
	Agressif     PortfolioType = "Agressif"
)

// PortfolioTypes lists every known type, in ascending risk order.
var PortfolioTypes = []PortfolioType{Securise, Conservateur, Modere, Agressif}

// IsValid reports whether t is one of the known portfolio types.
func (t PortfolioType) IsValid() bool {
	switch t {
	case Securise, Conservateur, Modere, Agressif:
		return true
	}
	return false
}

// Portfolio groups trading accounts under a client with profit-sharing rules.
type Portfolio struct {
	PortfolioID string        `json:"portfolioID"` // Primary Key (UUID)
	Name        string        `json:"name"`        // Operator-defined name
	Type        PortfolioType `json:"type"`
	Client      string        `json:"client"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// PortfolioAccount associates an external trading account with a portfolio.
// The lot factor must be drawn from the set permitted by the portfolio's
// type; Securise portfolios carry no factor restriction.
// An account belongs to at most one portfolio at a time.
type PortfolioAccount struct {
	PortfolioID string  `json:"portfolioID"`
	AccountID   int64   `json:"accountID"` // External account login
	LotFactor   float64 `json:"lotFactor"`
}
