package store

import (
	"context"
	"time"

	"github.com/marmos91/retrogg/pkg/models"
)

// ============================================
// MESSAGE OPERATIONS
// ============================================

// pendingBatchSize caps how many queued messages one fetch returns. Callers
// drain the queue by fetching until they get an empty batch.
const pendingBatchSize = 100

func (s *GORMStore) StoreMessage(ctx context.Context, msg *models.Message) (uint, error) {
	msg.ID = 0
	msg.CreatedAt = time.Now()
	msg.DeliveredAt = nil

	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return 0, err
	}
	return msg.ID, nil
}

func (s *GORMStore) GetPendingMessages(ctx context.Context, recipient uint32) ([]*models.Message, error) {
	var msgs []*models.Message
	err := s.db.WithContext(ctx).
		Where("recipient_uin = ? AND delivered_at IS NULL", recipient).
		Order("time ASC, id ASC").
		Limit(pendingBatchSize).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *GORMStore) GetPendingMessage(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).
		Where("id = ? AND delivered_at IS NULL", id).
		First(&msg).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrMessageNotFound)
	}
	return &msg, nil
}

func (s *GORMStore) MarkDelivered(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id IN ? AND delivered_at IS NULL", ids).
		Update("delivered_at", time.Now()).Error
}

func (s *GORMStore) MarkMessageDelivered(ctx context.Context, id uint) error {
	return s.MarkDelivered(ctx, []uint{id})
}

func (s *GORMStore) CleanupDelivered(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := s.db.WithContext(ctx).
		Where("delivered_at IS NOT NULL AND delivered_at < ?", cutoff).
		Delete(&models.Message{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
