package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"helpdesk/internal/model"
)

// NotificationRepository defines notification persistence operations.
// Notification rows are append-only apart from the read flag.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	GetPreference(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error)
	SavePreference(ctx context.Context, pref *model.NotificationPreference) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag on one of the user's own notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error
}

func (r *notificationRepository) GetPreference(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	var pref model.NotificationPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *notificationRepository) SavePreference(ctx context.Context, pref *model.NotificationPreference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}
