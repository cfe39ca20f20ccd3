package accounting

import (
	"fmt"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllowedLotFactors returns the lot factors permitted for accounts attached
// to a portfolio of the given type. An empty result means the type carries
// no factor restriction (Securise: any account, unlimited count).
// An unknown type is a configuration error, never silently defaulted: it
// means a new type was introduced without updating the policy tables.
func AllowedLotFactors(t domain.PortfolioType) ([]float64, error) {
	switch t {
	case domain.Securise:
		return nil, nil
	case domain.Conservateur:
		return []float64{0.2, 0.6, 1.0, 1.4, 1.8}, nil
	case domain.Modere:
		return []float64{2.0}, nil
	case domain.Agressif:
		return []float64{2.5, 3.0, 3.5, 4.0, 4.5}, nil
	}
	return nil, fmt.Errorf("%w: no lot factor table for portfolio type %q", apperrors.ErrConfiguration, t)
}

// WithdrawalPercentage returns the default suggested-withdrawal rate for the
// Standard distribution, as a percentage (50 means 50%).
func WithdrawalPercentage(t domain.PortfolioType) (decimal.Decimal, error) {
	switch t {
	case domain.Securise:
		return decimal.NewFromInt(50), nil
	case domain.Conservateur:
		return decimal.NewFromInt(70), nil
	case domain.Modere:
		return decimal.NewFromInt(80), nil
	case domain.Agressif:
		return decimal.NewFromInt(90), nil
	}
	return decimal.Zero, fmt.Errorf("%w: no withdrawal percentage for portfolio type %q", apperrors.ErrConfiguration, t)
}

// UsesEliteAlgorithm reports whether the type distributes profit through the
// tiered Elite system instead of the Standard proportional split.
func UsesEliteAlgorithm(t domain.PortfolioType) bool {
	return t == domain.Conservateur
}

// ValidateLotFactor checks that factor may be used on an account attached to
// a portfolio of the given type. Factor-restricted types require an exact
// member of the table; Securise accepts any non-negative factor.
func ValidateLotFactor(t domain.PortfolioType, factor float64) error {
	allowed, err := AllowedLotFactors(t)
	if err != nil {
		return err
	}
	if len(allowed) == 0 {
		if factor < 0 {
			return fmt.Errorf("%w: lot factor must not be negative", apperrors.ErrValidation)
		}
		return nil
	}
	for _, f := range allowed {
		if f == factor {
			return nil
		}
	}
	return fmt.Errorf("%w: lot factor %v not permitted for portfolio type %s (allowed: %v)",
		apperrors.ErrValidation, factor, t, allowed)
}

// LevelForLotFactor maps a Conservateur lot factor to its Elite level.
// The five factors map one-to-one onto N1..N5, highest factor = N5.
// Factors outside the table fall back to the middle level.
func LevelForLotFactor(factor float64) domain.EliteLevel {
	switch factor {
	case 1.8:
		return domain.LevelN5
	case 1.4:
		return domain.LevelN4
	case 1.0:
		return domain.LevelN3
	case 0.6:
		return domain.LevelN2
	case 0.2:
		return domain.LevelN1
	}
	return domain.LevelN3
}

// phaseThresholds are the capital floors of phases 1..5.
var phaseThresholds = []int64{0, 5000, 25000, 100000, 500000}

var phaseNames = map[int]string{
	1: "Survie",
	2: "Fondation",
	3: "Acceleration",
	4: "Securisation",
	5: "Patrimoine",
}

// PhaseForCapital returns the Elite phase (1..5) for a portfolio's total
// current capital.
func PhaseForCapital(totalCapital decimal.Decimal) int {
	for i := len(phaseThresholds) - 1; i >= 0; i-- {
		if totalCapital.GreaterThanOrEqual(decimal.NewFromInt(phaseThresholds[i])) {
			return i + 1
		}
	}
	return 1
}

// PhaseName returns the display name of an Elite phase.
func PhaseName(phase int) string {
	if name, ok := phaseNames[phase]; ok {
		return name
	}
	return "Unknown"
}

// DistributionRates is the remuneration/compound/transfer split applied to
// an account's monthly profit. The three rates sum to 1 in every table row,
// so the split partitions the profit exactly.
type DistributionRates struct {
	Remuneration decimal.Decimal
	Compound     decimal.Decimal
	Transfer     decimal.Decimal
}

// eliteDistribution holds [remuneration, compound, transfer] per phase and
// level. Higher levels earn a higher remuneration rate within each phase.
var eliteDistribution = map[int]map[domain.EliteLevel][3]float64{
	1: { // Survie (0-5k)
		domain.LevelN5: {0.10, 0.60, 0.30},
		domain.LevelN4: {0.05, 0.70, 0.25},
		domain.LevelN3: {0.00, 0.80, 0.20},
		domain.LevelN2: {0.00, 0.90, 0.10},
		domain.LevelN1: {0.00, 1.00, 0.00},
	},
	2: { // Fondation (5k-25k)
		domain.LevelN5: {0.15, 0.55, 0.30},
		domain.LevelN4: {0.10, 0.65, 0.25},
		domain.LevelN3: {0.05, 0.75, 0.20},
		domain.LevelN2: {0.00, 0.85, 0.15},
		domain.LevelN1: {0.00, 1.00, 0.00},
	},
	3: { // Acceleration (25k-100k)
		domain.LevelN5: {0.25, 0.45, 0.30},
		domain.LevelN4: {0.20, 0.55, 0.25},
		domain.LevelN3: {0.15, 0.65, 0.20},
		domain.LevelN2: {0.10, 0.75, 0.15},
		domain.LevelN1: {0.05, 0.95, 0.00},
	},
	4: { // Securisation (100k-500k)
		domain.LevelN5: {0.35, 0.35, 0.30},
		domain.LevelN4: {0.30, 0.45, 0.25},
		domain.LevelN3: {0.25, 0.55, 0.20},
		domain.LevelN2: {0.20, 0.65, 0.15},
		domain.LevelN1: {0.15, 0.85, 0.00},
	},
	5: { // Patrimoine (500k+)
		domain.LevelN5: {0.45, 0.25, 0.30},
		domain.LevelN4: {0.35, 0.40, 0.25},
		domain.LevelN3: {0.30, 0.70, 0.00},
		domain.LevelN2: {0.25, 0.75, 0.00},
		domain.LevelN1: {0.20, 0.80, 0.00},
	},
}

// EliteRates returns the distribution split for a phase/level pair.
func EliteRates(phase int, level domain.EliteLevel) (DistributionRates, error) {
	byLevel, ok := eliteDistribution[phase]
	if !ok {
		return DistributionRates{}, fmt.Errorf("%w: no Elite distribution table for phase %d", apperrors.ErrConfiguration, phase)
	}
	rates, ok := byLevel[level]
	if !ok {
		return DistributionRates{}, fmt.Errorf("%w: no Elite distribution entry for level %s in phase %d", apperrors.ErrConfiguration, level, phase)
	}
	return DistributionRates{
		Remuneration: decimal.NewFromFloat(rates[0]),
		Compound:     decimal.NewFromFloat(rates[1]),
		Transfer:     decimal.NewFromFloat(rates[2]),
	}, nil
}
