package repository

import (
	"context"

	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, notificationID int64) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, page, pageSize int) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, recipientID string, notificationID int64) error
	MarkAllRead(ctx context.Context, recipientID string) error
	MarkUnread(ctx context.Context, recipientID string, notificationID int64) error
	DeleteMatching(ctx context.Context, recipientID string, verb models.Verb, actionKind string, actionID int64) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetByID(ctx context.Context, notificationID int64) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).Preload("Actor").
		First(&notification, "id = ?", notificationID).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListByRecipient returns the recipient's notifications, unread first,
// newest first within each bucket.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, page, pageSize int) ([]models.Notification, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err = r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Preload("Actor").
		Order("unread DESC, created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID string, notificationID int64) error {
	return r.setUnread(ctx, recipientID, notificationID, false)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND unread = true", recipientID).
		Update("unread", false).Error
}

func (r *notificationRepository) MarkUnread(ctx context.Context, recipientID string, notificationID int64) error {
	return r.setUnread(ctx, recipientID, notificationID, true)
}

func (r *notificationRepository) setUnread(ctx context.Context, recipientID string, notificationID int64, unread bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("unread", unread)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMatching retracts notifications by the (recipient, verb, action
// object) triple. Zero matches is a no-op, not an error: the interaction
// being reversed may never have produced a notification.
func (r *notificationRepository) DeleteMatching(ctx context.Context, recipientID string, verb models.Verb, actionKind string, actionID int64) error {
	return r.db.WithContext(ctx).
		Where("recipient_id = ? AND verb = ? AND action_kind = ? AND action_id = ?",
			recipientID, verb, actionKind, actionID).
		Delete(&models.Notification{}).Error
}
