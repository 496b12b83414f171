package handlers

import (
	"net/http"

	"github.com/btbrandon/Orbital-2024/database"
	"github.com/btbrandon/Orbital-2024/models"
	"github.com/btbrandon/Orbital-2024/services"
	"github.com/btbrandon/Orbital-2024/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POST /api/friends/requests
func SendFriendRequest(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var friend models.User
	if err := database.DB.Where("username = ?", req.Username).First(&friend).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if friend.ID == userID {
		utils.BadRequest(c, "You cannot add yourself")
		return
	}

	if isFriend(userID, friend.ID) {
		utils.BadRequest(c, "Already friends")
		return
	}

	var existing models.FriendRequest
	if err := database.DB.Where("adder = ? AND addee = ?", userID, friend.ID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Friend request already sent")
		return
	}

	// A pending request in the other direction counts as mutual consent
	var reverse models.FriendRequest
	if err := database.DB.Where("adder = ? AND addee = ?", friend.ID, userID).First(&reverse).Error; err == nil {
		if err := acceptRequest(reverse); err != nil {
			utils.InternalError(c, "Failed to accept friend request")
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Friend request accepted", nil)
		return
	}

	request := models.FriendRequest{
		Adder: userID,
		Addee: friend.ID,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		utils.InternalError(c, "Failed to send friend request")
		return
	}

	var sender models.User
	database.DB.First(&sender, userID)
	go services.GetNotificationService().NotifyFriendRequest(friend, sender)

	utils.SuccessResponse(c, http.StatusCreated, "Friend request sent", request)
}

// GET /api/friends/requests — incoming requests
func GetFriendRequests(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var requests []models.FriendRequest
	database.DB.Where("addee = ?", userID).
		Preload("Sender").
		Order("created_at DESC").
		Find(&requests)

	responses := make([]models.FriendRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, models.FriendRequestResponse{
			ID:       r.ID,
			Adder:    r.Adder,
			Username: r.Sender.Username,
			SentAt:   r.CreatedAt,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// POST /api/friends/requests/:id/accept
func AcceptFriendRequest(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid request ID")
		return
	}

	var request models.FriendRequest
	if err := database.DB.Where("id = ? AND addee = ?", requestID, userID).First(&request).Error; err != nil {
		utils.NotFound(c, "Friend request not found")
		return
	}

	if err := acceptRequest(request); err != nil {
		utils.InternalError(c, "Failed to accept friend request")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Friend request accepted", nil)
}

// POST /api/friends/requests/:id/decline
func DeclineFriendRequest(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid request ID")
		return
	}

	result := database.DB.Where("id = ? AND addee = ?", requestID, userID).Delete(&models.FriendRequest{})
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Friend request not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Friend request declined", nil)
}

// GET /api/friends
func GetFriends(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var friendships []models.Friendship
	database.DB.Where("user1 = ?", userID).
		Preload("Friend").
		Find(&friendships)

	responses := make([]models.FriendResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, models.FriendResponse{
			UserID:   f.User2,
			Username: f.Friend.Username,
			Badge:    f.Friend.Badge,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// Friendship rows exist in both directions, so one lookup suffices.
func isFriend(userID, otherID uuid.UUID) bool {
	var friendship models.Friendship
	err := database.DB.Where("user1 = ? AND user2 = ?", userID, otherID).First(&friendship).Error
	return err == nil
}

// acceptRequest inserts both friendship directions and removes the request
// in one transaction.
func acceptRequest(request models.FriendRequest) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Friendship{User1: request.Addee, User2: request.Adder}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Friendship{User1: request.Adder, User2: request.Addee}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FriendRequest{}, request.ID).Error
	})
}
