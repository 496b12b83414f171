package ledger

import (
	"github.com/btbrandon/Orbital-2024/models"

	"github.com/google/uuid"
)

// Badge tier cutoffs, in mean days from bill creation to payment.
const (
	goldMaxDays   = 1.0
	silverMaxDays = 3.0
)

const hoursPerDay = 24.0

// ComputeReliabilityBadge scores how quickly the subject's debtors have
// historically paid up. Only bills where the subject is the owee count,
// and only settled ones contribute a latency; bills still outstanding are
// skipped rather than counted as zero. With no settled history there is
// nothing to rate, so the result is BadgeNone rather than a favorable
// default.
func ComputeReliabilityBadge(bills []models.Bill, subjectID uuid.UUID) models.Badge {
	var totalDays float64
	var settled int

	for _, bill := range bills {
		if bill.Owee != subjectID || bill.PaidAt == nil {
			continue
		}
		latency := bill.PaidAt.Sub(bill.CreatedAt)
		totalDays += latency.Hours() / hoursPerDay
		settled++
	}

	if settled == 0 {
		return models.BadgeNone
	}

	averageDays := totalDays / float64(settled)
	switch {
	case averageDays <= goldMaxDays:
		return models.BadgeGold
	case averageDays <= silverMaxDays:
		return models.BadgeSilver
	default:
		return models.BadgeNone
	}
}
