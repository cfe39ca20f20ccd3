package accounting

import (
	"sort"

	"github.com/GerardFevill/trade-vision/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EliteResult is the full outcome of the tiered distribution for one month
// of a Conservateur portfolio.
type EliteResult struct {
	Phase             int
	TotalRemuneration decimal.Decimal
	TotalCompound     decimal.Decimal
	TotalTransfer     decimal.Decimal
	Accounts          []domain.EliteAccountRecord
	Transfers         []domain.EliteTransfer
}

// DistributeElite splits each account's monthly profit into remuneration,
// compound and transfer according to the phase/level rate tables, then
// matches transfer deficits against surpluses at higher levels.
//
// The split is a partition by construction: transfer is computed as the
// remainder, so remuneration + compound + transfer equals the monthly
// profit exactly for every account, including losing ones (a negative
// transfer is a deficit to be covered, not a cash movement).
func DistributeElite(accounts []AccountState, totalCurrent decimal.Decimal) (*EliteResult, error) {
	result := &EliteResult{
		Phase:     PhaseForCapital(totalCurrent),
		Transfers: []domain.EliteTransfer{},
	}

	// Highest level first so the output order is deterministic and matches
	// the N5..N1 reading order of the tier system.
	ordered := make([]AccountState, len(accounts))
	copy(ordered, accounts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LotFactor > ordered[j].LotFactor
	})

	result.Accounts = make([]domain.EliteAccountRecord, 0, len(ordered))
	for _, a := range ordered {
		starting := a.startingOrCurrent()
		profit := a.CurrentBalance.Sub(starting)
		level := LevelForLotFactor(a.LotFactor)

		rates, err := EliteRates(result.Phase, level)
		if err != nil {
			return nil, err
		}

		remuneration := profit.Mul(rates.Remuneration)
		compound := profit.Mul(rates.Compound)
		transfer := profit.Sub(remuneration).Sub(compound)

		result.TotalRemuneration = result.TotalRemuneration.Add(remuneration)
		result.TotalCompound = result.TotalCompound.Add(compound)
		result.TotalTransfer = result.TotalTransfer.Add(transfer)

		result.Accounts = append(result.Accounts, domain.EliteAccountRecord{
			AccountID:       a.AccountID,
			AccountName:     a.Name,
			LotFactor:       a.LotFactor,
			Level:           level,
			StartingBalance: starting,
			EndingBalance:   a.CurrentBalance,
			MonthlyProfit:   profit,
			ProfitPercent:   percentOf(profit, starting),
			Remuneration:    remuneration,
			RemunerationPct: rates.Remuneration.Mul(hundred),
			Compound:        compound,
			CompoundPct:     rates.Compound.Mul(hundred),
			Transfer:        transfer,
			TransferPct:     rates.Transfer.Mul(hundred),
			Currency:        a.Currency,
		})
	}

	result.Transfers = matchTransfers(result.Accounts)
	return result, nil
}

// ledgerEntry tracks an account's unmatched transfer during matching.
type ledgerEntry struct {
	record    *domain.EliteAccountRecord
	remaining decimal.Decimal
}

// matchTransfers pairs deficit accounts (negative transfer) with surplus
// accounts at higher levels. Greedy policy: deficits are served highest
// level first, each drawing from the nearest higher level upward, largest
// surplus first within a level. Unmatched surplus stays with its account
// as retained transfer; no movement record is produced for it.
func matchTransfers(records []domain.EliteAccountRecord) []domain.EliteTransfer {
	entries := make([]ledgerEntry, len(records))
	for i := range records {
		entries[i] = ledgerEntry{record: &records[i], remaining: records[i].Transfer}
	}

	var deficits []*ledgerEntry
	for i := range entries {
		if entries[i].remaining.IsNegative() {
			deficits = append(deficits, &entries[i])
		}
	}
	// Highest deficit level first; larger shortfall wins ties.
	sort.SliceStable(deficits, func(i, j int) bool {
		ri, rj := deficits[i].record.Level.Rank(), deficits[j].record.Level.Rank()
		if ri != rj {
			return ri > rj
		}
		return deficits[i].remaining.LessThan(deficits[j].remaining)
	})

	transfers := []domain.EliteTransfer{}
	for _, deficit := range deficits {
		need := deficit.remaining.Neg()
		for rank := deficit.record.Level.Rank() + 1; rank <= domain.LevelN5.Rank() && need.IsPositive(); rank++ {
			for _, donor := range surplusAt(entries, rank) {
				if !need.IsPositive() {
					break
				}
				amount := decimal.Min(donor.remaining, need)
				donor.remaining = donor.remaining.Sub(amount)
				need = need.Sub(amount)
				transfers = append(transfers, domain.EliteTransfer{
					FromLevel:   donor.record.Level,
					ToLevel:     deficit.record.Level,
					Amount:      amount,
					FromAccount: donor.record.AccountName,
					ToAccount:   deficit.record.AccountName,
				})
			}
		}
		deficit.remaining = need.Neg()
	}

	// Descending source level, then amount descending, for reproducible
	// audit output.
	sort.SliceStable(transfers, func(i, j int) bool {
		ri, rj := transfers[i].FromLevel.Rank(), transfers[j].FromLevel.Rank()
		if ri != rj {
			return ri > rj
		}
		return transfers[i].Amount.GreaterThan(transfers[j].Amount)
	})
	return transfers
}

// surplusAt returns the entries at the given level rank that still hold a
// positive unmatched transfer, largest first.
func surplusAt(entries []ledgerEntry, rank int) []*ledgerEntry {
	var donors []*ledgerEntry
	for i := range entries {
		if entries[i].record.Level.Rank() == rank && entries[i].remaining.IsPositive() {
			donors = append(donors, &entries[i])
		}
	}
	sort.SliceStable(donors, func(i, j int) bool {
		return donors[i].remaining.GreaterThan(donors[j].remaining)
	})
	return donors
}
