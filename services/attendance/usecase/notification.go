package usecase

import (
	"context"
	"time"

	"attendance/domain"
)

type notificationUseCase struct {
	repo    domain.NotificationRepo
	TimeOut time.Duration
}

func NewNotificationUseCase(repo domain.NotificationRepo, to time.Duration) domain.NotificationUseCase {
	return &notificationUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (nu *notificationUseCase) GetInbox(ctx context.Context, actor *domain.User) (*[]domain.Notification, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, nu.TimeOut)
	defer cancel()

	return nu.repo.GetInbox(ctx, actor.UserID)
}

func (nu *notificationUseCase) MarkRead(ctx context.Context, actor *domain.User, notificationID int) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, nu.TimeOut)
	defer cancel()

	return nu.repo.MarkRead(ctx, actor.UserID, notificationID)
}
