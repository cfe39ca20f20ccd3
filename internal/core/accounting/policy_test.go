package accounting_test

import (
	"testing"

	"github.com/GerardFevill/trade-vision/internal/apperrors"
	"github.com/GerardFevill/trade-vision/internal/core/accounting"
	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedLotFactors(t *testing.T) {
	factors, err := accounting.AllowedLotFactors(domain.Conservateur)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.6, 1.0, 1.4, 1.8}, factors)

	factors, err = accounting.AllowedLotFactors(domain.Modere)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0}, factors)

	factors, err = accounting.AllowedLotFactors(domain.Agressif)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 3.0, 3.5, 4.0, 4.5}, factors)

	// Securise: empty set, no restriction.
	factors, err = accounting.AllowedLotFactors(domain.Securise)
	require.NoError(t, err)
	assert.Empty(t, factors)
}

func TestAllowedLotFactors_UnknownType(t *testing.T) {
	_, err := accounting.AllowedLotFactors(domain.PortfolioType("Turbo"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestWithdrawalPercentage(t *testing.T) {
	cases := map[domain.PortfolioType]int64{
		domain.Securise:     50,
		domain.Conservateur: 70,
		domain.Modere:       80,
		domain.Agressif:     90,
	}
	for portfolioType, want := range cases {
		pct, err := accounting.WithdrawalPercentage(portfolioType)
		require.NoError(t, err)
		assert.True(t, pct.Equal(decimal.NewFromInt(want)), "type %s", portfolioType)
	}

	_, err := accounting.WithdrawalPercentage(domain.PortfolioType(""))
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestUsesEliteAlgorithm(t *testing.T) {
	assert.True(t, accounting.UsesEliteAlgorithm(domain.Conservateur))
	assert.False(t, accounting.UsesEliteAlgorithm(domain.Securise))
	assert.False(t, accounting.UsesEliteAlgorithm(domain.Modere))
	assert.False(t, accounting.UsesEliteAlgorithm(domain.Agressif))
}

func TestValidateLotFactor(t *testing.T) {
	assert.NoError(t, accounting.ValidateLotFactor(domain.Conservateur, 1.4))
	assert.NoError(t, accounting.ValidateLotFactor(domain.Modere, 2.0))

	err := accounting.ValidateLotFactor(domain.Modere, 2.5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = accounting.ValidateLotFactor(domain.Agressif, 1.0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Securise accepts any non-negative factor.
	assert.NoError(t, accounting.ValidateLotFactor(domain.Securise, 0))
	assert.NoError(t, accounting.ValidateLotFactor(domain.Securise, 3.3))
	assert.ErrorIs(t, accounting.ValidateLotFactor(domain.Securise, -1), apperrors.ErrValidation)
}

func TestLevelForLotFactor(t *testing.T) {
	assert.Equal(t, domain.LevelN5, accounting.LevelForLotFactor(1.8))
	assert.Equal(t, domain.LevelN4, accounting.LevelForLotFactor(1.4))
	assert.Equal(t, domain.LevelN3, accounting.LevelForLotFactor(1.0))
	assert.Equal(t, domain.LevelN2, accounting.LevelForLotFactor(0.6))
	assert.Equal(t, domain.LevelN1, accounting.LevelForLotFactor(0.2))
	// Unknown factors fall back to the middle tier.
	assert.Equal(t, domain.LevelN3, accounting.LevelForLotFactor(0.9))
}

func TestPhaseForCapital(t *testing.T) {
	cases := []struct {
		capital int64
		phase   int
	}{
		{0, 1},
		{4999, 1},
		{5000, 2},
		{24999, 2},
		{25000, 3},
		{100000, 4},
		{499999, 4},
		{500000, 5},
		{2000000, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.phase, accounting.PhaseForCapital(decimal.NewFromInt(tc.capital)), "capital %d", tc.capital)
	}
}

func TestEliteRates_PartitionToOne(t *testing.T) {
	levels := []domain.EliteLevel{domain.LevelN5, domain.LevelN4, domain.LevelN3, domain.LevelN2, domain.LevelN1}
	one := decimal.NewFromInt(1)
	for phase := 1; phase <= 5; phase++ {
		for _, level := range levels {
			rates, err := accounting.EliteRates(phase, level)
			require.NoError(t, err)
			sum := rates.Remuneration.Add(rates.Compound).Add(rates.Transfer)
			assert.True(t, sum.Equal(one), "phase %d level %s rates sum to %s", phase, level, sum)
		}
	}
}

func TestEliteRates_RemunerationDecreasesWithLevel(t *testing.T) {
	for phase := 1; phase <= 5; phase++ {
		n5, err := accounting.EliteRates(phase, domain.LevelN5)
		require.NoError(t, err)
		n1, err := accounting.EliteRates(phase, domain.LevelN1)
		require.NoError(t, err)
		assert.True(t, n5.Remuneration.GreaterThanOrEqual(n1.Remuneration), "phase %d", phase)
	}
}

func TestEliteRates_UnknownPhase(t *testing.T) {
	_, err := accounting.EliteRates(7, domain.LevelN3)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}
