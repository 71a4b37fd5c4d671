package repository

import (
	"context"
	"errors"
	"time"

	"kindred/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListBetween returns the full thread between two users, oldest first.
	ListBetween(ctx context.Context, userA, userB uint, limit, offset int) ([]models.Message, error)
	// LastBetween returns the most recent message of a thread, or (nil, nil).
	LastBetween(ctx context.Context, userA, userB uint) (*models.Message, error)
	CountUnreadFor(ctx context.Context, receiverID uint) (int64, error)
	CountUnreadFrom(ctx context.Context, senderID, receiverID uint) (int64, error)
	// MarkReadFrom marks every unread message from sender to receiver as read.
	MarkReadFrom(ctx context.Context, senderID, receiverID uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userA, userB uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) LastBetween(ctx context.Context, userA, userB uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *messageRepository) CountUnreadFor(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *messageRepository) CountUnreadFrom(ctx context.Context, senderID, receiverID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *messageRepository) MarkReadFrom(ctx context.Context, senderID, receiverID uint) error {
	now := time.Now()
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
