package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friendship rows are stored in both directions: accepting a request
// inserts (a,b) and (b,a), so listing friends is a single lookup on user1.
type Friendship struct {
	User1     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user1"`
	User2     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user2"`
	Friend    User      `gorm:"foreignKey:User2" json:"friend,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FriendRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Adder     uuid.UUID `gorm:"type:uuid;index" json:"adder"`
	Addee     uuid.UUID `gorm:"type:uuid;index" json:"addee"`
	Sender    User      `gorm:"foreignKey:Adder" json:"sender,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Request structs
type AddFriendRequest struct {
	Username string `json:"username" binding:"required"`
}

// Response structs
type FriendResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Badge    Badge     `json:"badge"`
}

type FriendRequestResponse struct {
	ID       uuid.UUID `json:"id"`
	Adder    uuid.UUID `json:"adder"`
	Username string    `json:"username"`
	SentAt   time.Time `json:"sent_at"`
}
