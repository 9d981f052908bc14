package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"iothub/internal/domain/measurement"
	"iothub/internal/infrastructure/persistence/mappers"
	"iothub/internal/infrastructure/persistence/models"
	"iothub/internal/shared/db"
)

// GormMeasurementRepository implements measurement.Repository.
type GormMeasurementRepository struct {
	db     *gorm.DB
	mapper *mappers.MeasurementMapper
}

// NewGormMeasurementRepository creates a GormMeasurementRepository.
func NewGormMeasurementRepository(database *gorm.DB) *GormMeasurementRepository {
	return &GormMeasurementRepository{
		db:     database,
		mapper: mappers.NewMeasurementMapper(),
	}
}

// Create inserts a measurement and backfills the generated id.
func (r *GormMeasurementRepository) Create(ctx context.Context, m *measurement.Measurement) error {
	model := r.mapper.ToModel(m)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create measurement: %w", err)
	}
	m.SetID(model.ID)
	return nil
}

// ListByDeviceID returns a page of the device's measurements, newest first,
// with the total count.
func (r *GormMeasurementRepository) ListByDeviceID(ctx context.Context, deviceID uint, offset, limit int) ([]*measurement.Measurement, int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.MeasurementModel{}).
		Where("device_id = ?", deviceID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count measurements: %w", err)
	}

	var rows []models.MeasurementModel
	err := conn.Where("device_id = ?", deviceID).
		Order("recorded_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list measurements: %w", err)
	}

	items := make([]*measurement.Measurement, 0, len(rows))
	for i := range rows {
		items = append(items, r.mapper.ToDomain(&rows[i]))
	}
	return items, total, nil
}
