package handlers

import (
	"net/http"
	"time"

	"github.com/btbrandon/Orbital-2024/database"
	"github.com/btbrandon/Orbital-2024/models"
	"github.com/btbrandon/Orbital-2024/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GET /api/analytics?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// Returns per-category spending totals for the range, defaulting to the
// current calendar month.
func GetAnalytics(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if parsed, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		from = parsed
	}
	if parsed, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		to = parsed.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		utils.BadRequest(c, "to must be after from")
		return
	}

	breakdown := models.CategoryBreakdown{
		From:       from,
		To:         to,
		Categories: make(map[string]decimal.Decimal),
		Total:      decimal.Zero,
	}

	type categoryTotal struct {
		Category string
		Total    decimal.Decimal
	}

	var totals []categoryTotal
	database.DB.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(price), 0) AS total").
		Where("user_id = ? AND spent_at >= ? AND spent_at < ?", userID, from, to).
		Group("category").
		Scan(&totals)

	for _, t := range totals {
		breakdown.Categories[t.Category] = t.Total
		breakdown.Total = breakdown.Total.Add(t.Total)
	}

	// Categories with no spending still show up as zero
	for _, category := range models.ExpenseCategories {
		if _, ok := breakdown.Categories[category]; !ok {
			breakdown.Categories[category] = decimal.Zero
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", breakdown)
}
