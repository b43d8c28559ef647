package repository

import (
	"context"
	"fmt"

	"attendance/domain"

	"gorm.io/gorm"
)

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) domain.NotificationRepo {
	return &notificationRepo{
		db: db,
	}
}

func (nr *notificationRepo) GetInbox(ctx context.Context, userID int) (*[]domain.Notification, error) {
	var inbox []domain.Notification
	err := nr.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&inbox).Error
	if err != nil {
		return nil, fmt.Errorf("could not get inbox: %w", err)
	}
	return &inbox, nil
}

func (nr *notificationRepo) MarkRead(ctx context.Context, userID, notificationID int) error {
	res := nr.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("could not mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification %d: %w", notificationID, domain.ErrNotFound)
	}
	return nil
}
