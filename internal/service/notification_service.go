package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "helpdesk/internal/errors"
	"helpdesk/internal/model"
	"helpdesk/internal/repository"
)

// NotificationService exposes a user's own notification feed and their email
// preference.
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	GetPreference(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error)
	UpdatePreference(ctx context.Context, userID uuid.UUID, emailNotifications bool) (*model.NotificationPreference, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, notificationID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// GetPreference returns the user's preference row, creating the default
// (email enabled) if registration predates preference provisioning.
func (s *notificationService) GetPreference(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	pref, err := s.repo.GetPreference(ctx, userID)
	if err == nil {
		return pref, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("load preference: %w", err)
	}

	pref = &model.NotificationPreference{
		UserID:             userID,
		EmailNotifications: true,
	}
	if err := s.repo.SavePreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return pref, nil
}

func (s *notificationService) UpdatePreference(ctx context.Context, userID uuid.UUID, emailNotifications bool) (*model.NotificationPreference, error) {
	pref, err := s.GetPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	pref.EmailNotifications = emailNotifications
	if err := s.repo.SavePreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("update preference: %w", err)
	}
	return pref, nil
}
