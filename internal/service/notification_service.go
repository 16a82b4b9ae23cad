package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/internal/repository"
	"anoa.com/campusplacement/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NotificationChannel returns the Redis pub/sub channel for a user's live
// notification stream.
func NotificationChannel(userID string) string {
	return fmt.Sprintf("user_notifications:%s", userID)
}

type NotificationService interface {
	Create(ctx context.Context, notification *model.Notification) error
	GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	// CleanupOld drops read notifications older than the retention window.
	CleanupOld(ctx context.Context, retention time.Duration) error
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) Create(ctx context.Context, notification *model.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	// Publish for live delivery when Redis is around.
	if s.redisClient != nil {
		if payload, err := json.Marshal(notification); err == nil {
			s.redisClient.Publish(ctx, NotificationChannel(notification.UserID.String()), payload)
		}
	}

	return nil
}

func (s *notificationService) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	return s.repo.FindByUser(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	matched, err := s.repo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) CleanupOld(ctx context.Context, retention time.Duration) error {
	deleted, err := s.repo.DeleteReadBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("cleaned up %d old notifications", deleted)
	}
	return nil
}
