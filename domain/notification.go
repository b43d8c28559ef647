package domain

import (
	"context"
	"time"
)

// Notification is one inbox entry for a user. Adjudication writes one per
// decision; nothing is delivered anywhere, the inbox listing is the whole
// surface.
type Notification struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NotificationRepo interface {
	GetInbox(ctx context.Context, userID int) (*[]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int) error
}

type NotificationUseCase interface {
	GetInbox(ctx context.Context, actor *User) (*[]Notification, error)
	MarkRead(ctx context.Context, actor *User, notificationID int) error
}
