package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"iothub/internal/domain/device"
	"iothub/internal/infrastructure/persistence/mappers"
	"iothub/internal/infrastructure/persistence/models"
	"iothub/internal/shared/db"
	"iothub/internal/shared/errors"
)

// GormDeviceRepository implements device.Repository.
type GormDeviceRepository struct {
	db     *gorm.DB
	mapper *mappers.DeviceMapper
}

// NewGormDeviceRepository creates a GormDeviceRepository.
func NewGormDeviceRepository(database *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{
		db:     database,
		mapper: mappers.NewDeviceMapper(),
	}
}

// Create inserts a device and backfills the generated id.
func (r *GormDeviceRepository) Create(ctx context.Context, d *device.Device) error {
	model := r.mapper.ToModel(d)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("Device already exists")
		}
		return fmt.Errorf("failed to create device: %w", err)
	}
	d.SetID(model.ID)
	return nil
}

// GetByUUID fetches a device by its wire identity.
func (r *GormDeviceRepository) GetByUUID(ctx context.Context, uuid string) (*device.Device, error) {
	var model models.DeviceModel
	err := db.GetTxFromContext(ctx, r.db).Where("uuid = ?", uuid).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Device not found")
		}
		return nil, fmt.Errorf("failed to get device by uuid: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByOwnerID returns all devices registered to the owner.
func (r *GormDeviceRepository) ListByOwnerID(ctx context.Context, ownerID uint) ([]*device.Device, error) {
	var rows []models.DeviceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := make([]*device.Device, 0, len(rows))
	for i := range rows {
		devices = append(devices, r.mapper.ToDomain(&rows[i]))
	}
	return devices, nil
}
