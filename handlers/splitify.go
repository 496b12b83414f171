package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/btbrandon/Orbital-2024/database"
	"github.com/btbrandon/Orbital-2024/ledger"
	"github.com/btbrandon/Orbital-2024/models"
	"github.com/btbrandon/Orbital-2024/services"
	"github.com/btbrandon/Orbital-2024/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const ledgerCacheTTL = 5 * time.Minute

// GET /api/splitify/ledger
func GetLedger(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	if cached, ok := cachedLedgerView(c.Request.Context(), userID); ok {
		utils.SuccessResponse(c, http.StatusOK, "", cached)
		return
	}

	var bills []models.Bill
	database.DB.Where("(owee = ? OR ower = ?) AND paid_at IS NULL", userID, userID).
		Find(&bills)

	view := ledger.BuildLedgerView(bills, userID, ledger.MapResolver(resolveUsernames(bills, userID)))

	cacheLedgerView(c.Request.Context(), userID, view)

	utils.SuccessResponse(c, http.StatusOK, "", view)
}

// POST /api/splitify/bills
func SplitBill(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.SplitBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var bills []models.Bill
	for _, split := range req.Splits {
		if !split.Amount.IsPositive() {
			continue // unfilled rows are skipped, not recorded as zero
		}

		friendID, err := uuid.Parse(split.FriendID)
		if err != nil {
			utils.BadRequest(c, "Invalid friend ID: "+split.FriendID)
			return
		}
		if friendID == userID {
			utils.BadRequest(c, "You cannot split a bill with yourself")
			return
		}
		if !isFriend(userID, friendID) {
			utils.BadRequest(c, "You can only split bills with friends")
			return
		}

		bills = append(bills, models.Bill{
			Owee:   userID,
			Ower:   friendID,
			Amount: split.Amount,
		})
	}

	if len(bills) == 0 {
		utils.BadRequest(c, "Please fill in at least one amount")
		return
	}

	if err := database.DB.Create(&bills).Error; err != nil {
		utils.InternalError(c, "Failed to create bills")
		return
	}

	var payer models.User
	database.DB.First(&payer, userID)

	invalidateLedgerCache(c.Request.Context(), userID)
	for _, bill := range bills {
		invalidateLedgerCache(c.Request.Context(), bill.Ower)

		var ower models.User
		if err := database.DB.First(&ower, bill.Ower).Error; err == nil {
			go services.GetNotificationService().NotifyBillSplit(ower, payer, bill.Amount)
		}
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bill added successfully", bills)
}

// POST /api/splitify/settle
//
// Clears the counterparty's entire outstanding balance towards the caller.
// The update is a single conditional write so that two concurrent
// settlements of the same pair cannot both claim the same bills.
func SettleDebt(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.SettleDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	owerID, err := uuid.Parse(req.OwerID)
	if err != nil {
		utils.BadRequest(c, "Invalid ower ID")
		return
	}

	type settledRow struct {
		Amount decimal.Decimal
	}

	var settled []settledRow
	result := database.DB.Raw(`
		UPDATE bills
		SET paid_at = ?
		WHERE owee = ? AND ower = ? AND paid_at IS NULL
		RETURNING amount
	`, time.Now(), userID, owerID).Scan(&settled)
	if result.Error != nil {
		utils.InternalError(c, "Failed to settle debt")
		return
	}

	if len(settled) == 0 {
		utils.NotFound(c, "No outstanding bills with this user")
		return
	}

	total := decimal.Zero
	for _, row := range settled {
		total = total.Add(row.Amount)
	}

	badge := recomputeBadge(userID)

	invalidateLedgerCache(c.Request.Context(), userID)
	invalidateLedgerCache(c.Request.Context(), owerID)

	var owee, ower models.User
	database.DB.First(&owee, userID)
	if err := database.DB.First(&ower, owerID).Error; err == nil {
		go services.GetNotificationService().NotifyDebtSettled(ower, owee, total)
	}

	utils.SuccessResponse(c, http.StatusOK, "Debt settled", models.SettleDebtResponse{
		Ower:         owerID,
		SettledCount: len(settled),
		SettledTotal: total,
		Badge:        badge,
	})
}

// DELETE /api/splitify/bills/:ower
//
// Hard-deletes every bill between the caller (as owee) and the given ower,
// settled or not. Settling (POST /api/splitify/settle) is the normal path;
// this exists for cleaning up mistakes.
func DeleteBills(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	owerID, err := uuid.Parse(c.Param("ower"))
	if err != nil {
		utils.BadRequest(c, "Invalid ower ID")
		return
	}

	result := database.DB.Where("owee = ? AND ower = ?", userID, owerID).Delete(&models.Bill{})
	if result.Error != nil {
		utils.InternalError(c, "Failed to delete bills")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "No bills with this user")
		return
	}

	recomputeBadge(userID)

	invalidateLedgerCache(c.Request.Context(), userID)
	invalidateLedgerCache(c.Request.Context(), owerID)

	utils.SuccessResponse(c, http.StatusOK, "Bills deleted", gin.H{"deleted": result.RowsAffected})
}

// resolveUsernames fetches every counterparty's username in one query.
func resolveUsernames(bills []models.Bill, subjectID uuid.UUID) map[uuid.UUID]string {
	idSet := make(map[uuid.UUID]struct{})
	for _, bill := range bills {
		if bill.Owee != subjectID {
			idSet[bill.Owee] = struct{}{}
		}
		if bill.Ower != subjectID {
			idSet[bill.Ower] = struct{}{}
		}
	}

	usernames := make(map[uuid.UUID]string, len(idSet))
	if len(idSet) == 0 {
		return usernames
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []models.User
	database.DB.Where("id IN ?", ids).Find(&users)
	for _, user := range users {
		usernames[user.ID] = user.Username
	}
	return usernames
}

// recomputeBadge rescores the user from their full history as an owee and
// persists the result onto the user row.
func recomputeBadge(userID uuid.UUID) models.Badge {
	var bills []models.Bill
	database.DB.Where("owee = ?", userID).Find(&bills)

	badge := ledger.ComputeReliabilityBadge(bills, userID)
	database.DB.Model(&models.User{}).Where("id = ?", userID).Update("badge", badge)
	return badge
}

func ledgerCacheKey(userID uuid.UUID) string {
	return "ledger:" + userID.String()
}

func cachedLedgerView(ctx context.Context, userID uuid.UUID) (models.LedgerView, bool) {
	var view models.LedgerView
	if database.Redis == nil {
		return view, false
	}

	payload, err := database.Redis.Get(ctx, ledgerCacheKey(userID)).Bytes()
	if err != nil {
		return view, false
	}
	if err := json.Unmarshal(payload, &view); err != nil {
		return view, false
	}
	return view, true
}

func cacheLedgerView(ctx context.Context, userID uuid.UUID, view models.LedgerView) {
	if database.Redis == nil {
		return
	}
	payload, err := json.Marshal(view)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, ledgerCacheKey(userID), payload, ledgerCacheTTL)
}

func invalidateLedgerCache(ctx context.Context, userID uuid.UUID) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, ledgerCacheKey(userID))
}
