// Package ledger holds the Splitify balance aggregation and reliability
// scoring. Everything here is a pure transformation over bills already
// fetched by the caller; the package does no I/O of its own.
package ledger

import (
	"time"

	"github.com/btbrandon/Orbital-2024/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnknownUser is the grouping key used when a counterparty id cannot be
// resolved to a username. Resolution failures never abort aggregation.
const UnknownUser = "Unknown"

// UsernameResolver maps a user id to a display name. The second return
// value reports whether the id was found.
type UsernameResolver func(id uuid.UUID) (string, bool)

// MapResolver adapts a prefetched id-to-username map (one batched lookup)
// into a UsernameResolver.
func MapResolver(usernames map[uuid.UUID]string) UsernameResolver {
	return func(id uuid.UUID) (string, bool) {
		name, ok := usernames[id]
		return name, ok
	}
}

// BuildLedgerView aggregates the subject's outstanding bills into
// per-counterparty totals, split by direction. Settled bills and bills not
// involving the subject are ignored. Counterparties that net to exactly
// zero are dropped from the result.
func BuildLedgerView(bills []models.Bill, subjectID uuid.UUID, resolve UsernameResolver) models.LedgerView {
	iOwe := make(map[string]decimal.Decimal)
	friendsOwe := make(map[string]decimal.Decimal)

	for _, bill := range bills {
		if !bill.Outstanding() {
			continue
		}

		switch {
		case bill.Owee == subjectID:
			// Counterparty owes the subject
			name := resolveName(resolve, bill.Ower)
			friendsOwe[name] = friendsOwe[name].Add(bill.Amount)
		case bill.Ower == subjectID:
			// Subject owes the counterparty
			name := resolveName(resolve, bill.Owee)
			iOwe[name] = iOwe[name].Add(bill.Amount)
		}
	}

	dropZeroes(iOwe)
	dropZeroes(friendsOwe)

	return models.LedgerView{
		IOwe:            iOwe,
		FriendsOwe:      friendsOwe,
		IOweTotal:       sumValues(iOwe),
		FriendsOweTotal: sumValues(friendsOwe),
	}
}

// SettleDebt marks every outstanding bill where owerID owes oweeID as paid
// at the given time. It is all-or-nothing for the pair: partial settlement
// is not supported. Returns the updated bill set and the total cleared.
func SettleDebt(bills []models.Bill, oweeID, owerID uuid.UUID, at time.Time) ([]models.Bill, decimal.Decimal) {
	out := make([]models.Bill, len(bills))
	copy(out, bills)

	total := decimal.Zero
	for i := range out {
		if out[i].Owee != oweeID || out[i].Ower != owerID || !out[i].Outstanding() {
			continue
		}
		paidAt := at
		out[i].PaidAt = &paidAt
		total = total.Add(out[i].Amount)
	}

	return out, total
}

func resolveName(resolve UsernameResolver, id uuid.UUID) string {
	if resolve == nil {
		return UnknownUser
	}
	name, ok := resolve(id)
	if !ok || name == "" {
		return UnknownUser
	}
	return name
}

func dropZeroes(totals map[string]decimal.Decimal) {
	for name, total := range totals {
		if total.IsZero() {
			delete(totals, name)
		}
	}
}

func sumValues(totals map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(total)
	}
	return sum
}
