package handlers

import (
	"net/http"
	"time"

	"github.com/btbrandon/Orbital-2024/database"
	"github.com/btbrandon/Orbital-2024/models"
	"github.com/btbrandon/Orbital-2024/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/expenses
func CreateExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if !models.ValidCategory(req.Category) {
		utils.BadRequest(c, "Invalid category")
		return
	}
	if !req.Price.IsPositive() {
		utils.BadRequest(c, "Price must be greater than 0")
		return
	}

	spentAt := time.Now()
	if req.SpentAt != "" {
		parsed, err := time.Parse("2006-01-02", req.SpentAt)
		if err != nil {
			utils.BadRequest(c, "spent_at must be YYYY-MM-DD")
			return
		}
		spentAt = parsed
	}

	expense := models.Expense{
		UserID:   userID,
		Category: req.Category,
		Name:     req.Name,
		Price:    req.Price,
		SpentAt:  spentAt,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		utils.InternalError(c, "Failed to create expense")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", expense)
}

// GET /api/expenses?from=YYYY-MM-DD&to=YYYY-MM-DD
func GetExpenses(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	query := database.DB.Where("user_id = ?", userID)
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		query = query.Where("spent_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		query = query.Where("spent_at < ?", to.AddDate(0, 0, 1))
	}

	var expenses []models.Expense
	query.Order("spent_at DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&expenses)

	utils.SuccessResponse(c, http.StatusOK, "", expenses)
}

// GET /api/expenses/recent — today's transactions
func GetRecentExpenses(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var expenses []models.Expense
	database.DB.Where("user_id = ? AND spent_at >= ?", userID, startOfDay).
		Order("spent_at DESC").
		Find(&expenses)

	utils.SuccessResponse(c, http.StatusOK, "", expenses)
}

// PUT /api/expenses/:id
func UpdateExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			utils.BadRequest(c, "Invalid category")
			return
		}
		updates["category"] = req.Category
	}
	if req.Price.IsPositive() {
		updates["price"] = req.Price
	}

	database.DB.Model(&expense).Updates(updates)

	utils.SuccessResponse(c, http.StatusOK, "Expense updated", expense)
}

// DELETE /api/expenses/:id
func DeleteExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Expense not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted", nil)
}
