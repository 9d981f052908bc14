package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"iothub/internal/domain/notification"
	"iothub/internal/infrastructure/persistence/mappers"
	"iothub/internal/infrastructure/persistence/models"
	"iothub/internal/shared/db"
)

// GormNotificationRepository implements notification.Repository.
type GormNotificationRepository struct {
	db     *gorm.DB
	mapper *mappers.NotificationMapper
}

// NewGormNotificationRepository creates a GormNotificationRepository.
func NewGormNotificationRepository(database *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:     database,
		mapper: mappers.NewNotificationMapper(),
	}
}

// Create inserts a notification and backfills the generated id.
func (r *GormNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := r.mapper.ToModel(n)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	n.SetID(model.ID)
	return nil
}

// ListByDeviceID returns a page of the device's notifications, newest first,
// with the total count.
func (r *GormNotificationRepository) ListByDeviceID(ctx context.Context, deviceID uint, offset, limit int) ([]*notification.Notification, int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.NotificationModel{}).
		Where("device_id = ?", deviceID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var rows []models.NotificationModel
	err := conn.Where("device_id = ?", deviceID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	items := make([]*notification.Notification, 0, len(rows))
	for i := range rows {
		items = append(items, r.mapper.ToDomain(&rows[i]))
	}
	return items, total, nil
}
