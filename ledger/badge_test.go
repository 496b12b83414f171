package ledger

import (
	"testing"
	"time"

	"github.com/btbrandon/Orbital-2024/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeReliabilityBadge_NoHistory(t *testing.T) {
	assert.Equal(t, models.BadgeNone, ComputeReliabilityBadge(nil, subject))
}

func TestComputeReliabilityBadge_AllOutstanding(t *testing.T) {
	bills := []models.Bill{
		bill(subject, bob, "10"),
		bill(subject, carol, "20"),
	}

	assert.Equal(t, models.BadgeNone, ComputeReliabilityBadge(bills, subject))
}

func TestComputeReliabilityBadge_FastPayers(t *testing.T) {
	bills := []models.Bill{
		settledBill(subject, bob, "10", 0.5),
		settledBill(subject, carol, "20", 1),
	}

	assert.Equal(t, models.BadgeGold, ComputeReliabilityBadge(bills, subject))
}

func TestComputeReliabilityBadge_ModeratePayers(t *testing.T) {
	bills := []models.Bill{
		settledBill(subject, bob, "10", 1.5),
		settledBill(subject, carol, "20", 3),
	}

	assert.Equal(t, models.BadgeSilver, ComputeReliabilityBadge(bills, subject))
}

func TestComputeReliabilityBadge_SlowPayers(t *testing.T) {
	bills := []models.Bill{
		settledBill(subject, bob, "10", 5),
		settledBill(subject, carol, "20", 10),
	}

	assert.Equal(t, models.BadgeNone, ComputeReliabilityBadge(bills, subject))
}

func TestComputeReliabilityBadge_MeanNotWorstLatency(t *testing.T) {
	// One same-day payment and one four days late: mean is 2 days, so the
	// slow outlier does not drop the badge below silver.
	bills := []models.Bill{
		settledBill(subject, carol, "10", 0),
		settledBill(subject, carol, "10", 4),
	}

	assert.Equal(t, models.BadgeSilver, ComputeReliabilityBadge(bills, subject))
}

func TestComputeReliabilityBadge_OutstandingBillsExcludedFromMean(t *testing.T) {
	// The outstanding bill must not count as a zero-day payment
	bills := []models.Bill{
		settledBill(subject, bob, "10", 4),
		bill(subject, bob, "99"),
	}

	assert.Equal(t, models.BadgeNone, ComputeReliabilityBadge(bills, subject))
}

func TestComputeReliabilityBadge_IgnoresDebtsOwedToOthers(t *testing.T) {
	// Bills where the subject is the ower say nothing about the subject's
	// debtors, however promptly they were paid.
	bills := []models.Bill{
		settledBill(bob, subject, "10", 0),
	}

	assert.Equal(t, models.BadgeNone, ComputeReliabilityBadge(bills, subject))
}

func TestComputeReliabilityBadge_TierBoundaries(t *testing.T) {
	exactly := func(days float64) []models.Bill {
		return []models.Bill{settledBill(subject, bob, "10", days)}
	}

	assert.Equal(t, models.BadgeGold, ComputeReliabilityBadge(exactly(1), subject))
	assert.Equal(t, models.BadgeSilver, ComputeReliabilityBadge(exactly(1.5), subject))
	assert.Equal(t, models.BadgeSilver, ComputeReliabilityBadge(exactly(3), subject))
	assert.Equal(t, models.BadgeNone, ComputeReliabilityBadge(exactly(3.1), subject))
}

func TestComputeReliabilityBadge_FractionalDays(t *testing.T) {
	b := bill(subject, bob, "10")
	paidAt := b.CreatedAt.Add(36 * time.Hour) // 1.5 days
	b.PaidAt = &paidAt

	assert.Equal(t, models.BadgeSilver, ComputeReliabilityBadge([]models.Bill{b}, subject))
}
