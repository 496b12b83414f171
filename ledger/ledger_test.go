package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/btbrandon/Orbital-2024/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	subject = uuid.New()
	alice   = uuid.New()
	bob     = uuid.New()
	carol   = uuid.New()
)

func testResolver() UsernameResolver {
	return MapResolver(map[uuid.UUID]string{
		alice: "alice",
		bob:   "bob",
		carol: "carol",
	})
}

func bill(owee, ower uuid.UUID, amount string) models.Bill {
	return models.Bill{
		ID:        uuid.New(),
		Owee:      owee,
		Ower:      ower,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: time.Now(),
	}
}

func settledBill(owee, ower uuid.UUID, amount string, daysToPay float64) models.Bill {
	b := bill(owee, ower, amount)
	paidAt := b.CreatedAt.Add(time.Duration(daysToPay * 24 * float64(time.Hour)))
	b.PaidAt = &paidAt
	return b
}

func TestBuildLedgerView_SplitsByDirection(t *testing.T) {
	// Subject owes alice 10+5 and is owed 20 by bob
	bills := []models.Bill{
		bill(alice, subject, "10"),
		bill(alice, subject, "5"),
		bill(subject, bob, "20"),
	}

	view := BuildLedgerView(bills, subject, testResolver())

	require.Len(t, view.IOwe, 1)
	require.Len(t, view.FriendsOwe, 1)
	assert.True(t, view.IOwe["alice"].Equal(decimal.NewFromInt(15)))
	assert.True(t, view.FriendsOwe["bob"].Equal(decimal.NewFromInt(20)))
	assert.True(t, view.IOweTotal.Equal(decimal.NewFromInt(15)))
	assert.True(t, view.FriendsOweTotal.Equal(decimal.NewFromInt(20)))
}

func TestBuildLedgerView_OrderIndependent(t *testing.T) {
	bills := []models.Bill{
		bill(alice, subject, "10.50"),
		bill(subject, alice, "3.25"),
		bill(subject, bob, "20"),
		bill(carol, subject, "7.75"),
		bill(subject, carol, "0.01"),
	}

	want := BuildLedgerView(bills, subject, testResolver())

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.Bill, len(bills))
		copy(shuffled, bills)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := BuildLedgerView(shuffled, subject, testResolver())
		assert.Equal(t, want, got)
	}
}

func TestBuildLedgerView_ConservesTotals(t *testing.T) {
	bills := []models.Bill{
		bill(alice, subject, "10"),
		bill(bob, subject, "2.50"),
		bill(subject, bob, "20"),
		bill(subject, carol, "4.99"),
	}

	sum := decimal.Zero
	for _, b := range bills {
		sum = sum.Add(b.Amount)
	}

	view := BuildLedgerView(bills, subject, testResolver())
	assert.True(t, view.IOweTotal.Add(view.FriendsOweTotal).Equal(sum))
}

func TestBuildLedgerView_UnresolvedCounterparty(t *testing.T) {
	stranger := uuid.New()
	bills := []models.Bill{
		bill(subject, stranger, "12"),
		bill(stranger, subject, "8"),
	}

	assert.NotPanics(t, func() {
		view := BuildLedgerView(bills, subject, testResolver())
		assert.True(t, view.FriendsOwe[UnknownUser].Equal(decimal.NewFromInt(12)))
		assert.True(t, view.IOwe[UnknownUser].Equal(decimal.NewFromInt(8)))
	})
}

func TestBuildLedgerView_NilResolver(t *testing.T) {
	view := BuildLedgerView([]models.Bill{bill(subject, bob, "5")}, subject, nil)
	assert.True(t, view.FriendsOwe[UnknownUser].Equal(decimal.NewFromInt(5)))
}

func TestBuildLedgerView_EmptyInput(t *testing.T) {
	view := BuildLedgerView(nil, subject, testResolver())

	assert.Empty(t, view.IOwe)
	assert.Empty(t, view.FriendsOwe)
	assert.True(t, view.IOweTotal.IsZero())
	assert.True(t, view.FriendsOweTotal.IsZero())
}

func TestBuildLedgerView_SkipsSettledBills(t *testing.T) {
	bills := []models.Bill{
		bill(subject, bob, "20"),
		settledBill(subject, bob, "50", 2),
	}

	view := BuildLedgerView(bills, subject, testResolver())
	assert.True(t, view.FriendsOwe["bob"].Equal(decimal.NewFromInt(20)))
	assert.True(t, view.FriendsOweTotal.Equal(decimal.NewFromInt(20)))
}

func TestBuildLedgerView_DropsZeroEntries(t *testing.T) {
	bills := []models.Bill{
		bill(subject, bob, "0"),
		bill(subject, carol, "10"),
	}

	view := BuildLedgerView(bills, subject, testResolver())
	_, exists := view.FriendsOwe["bob"]
	assert.False(t, exists)
	assert.True(t, view.FriendsOweTotal.Equal(decimal.NewFromInt(10)))
}

func TestBuildLedgerView_IgnoresUnrelatedBills(t *testing.T) {
	bills := []models.Bill{
		bill(alice, bob, "99"),
		bill(subject, carol, "10"),
	}

	view := BuildLedgerView(bills, subject, testResolver())
	assert.Len(t, view.FriendsOwe, 1)
	assert.Empty(t, view.IOwe)
	assert.True(t, view.FriendsOweTotal.Equal(decimal.NewFromInt(10)))
}

func TestSettleDebt_ClearsOnlyMatchingPair(t *testing.T) {
	bills := []models.Bill{
		bill(subject, bob, "10"),
		bill(subject, bob, "5.50"),
		bill(subject, carol, "7"),
		bill(bob, subject, "3"),
	}

	now := time.Now()
	updated, total := SettleDebt(bills, subject, bob, now)

	assert.True(t, total.Equal(decimal.RequireFromString("15.50")))

	var settledCount int
	for _, b := range updated {
		if b.PaidAt != nil {
			settledCount++
			assert.Equal(t, subject, b.Owee)
			assert.Equal(t, bob, b.Ower)
			assert.Equal(t, now, *b.PaidAt)
		}
	}
	assert.Equal(t, 2, settledCount)

	// Input slice is untouched
	for _, b := range bills {
		assert.Nil(t, b.PaidAt)
	}
}

func TestSettleDebt_SkipsAlreadySettled(t *testing.T) {
	bills := []models.Bill{
		settledBill(subject, bob, "10", 1),
		bill(subject, bob, "5"),
	}

	_, total := SettleDebt(bills, subject, bob, time.Now())
	assert.True(t, total.Equal(decimal.NewFromInt(5)))
}

func TestSettleDebt_NoMatches(t *testing.T) {
	bills := []models.Bill{
		bill(subject, carol, "7"),
	}

	updated, total := SettleDebt(bills, subject, bob, time.Now())
	assert.True(t, total.IsZero())
	assert.Equal(t, bills, updated)
}
