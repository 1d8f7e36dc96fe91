package buses

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, bus *Bus) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bus, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Bus, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, query BusListQuery) ([]Bus, int64, error)
	SearchByRoute(ctx context.Context, source, destination string) ([]Bus, error)
	BusNumberExists(ctx context.Context, busNumber string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bus *Bus) error {
	err := r.db.WithContext(ctx).Create(bus).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicateBusNumber
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Bus, error) {
	var bus Bus
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bus).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	return &bus, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Bus, error) {
	var bus Bus

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&bus).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&bus).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&bus).Error; err != nil {
		return nil, err
	}

	return &bus, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Bus{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBusNotFound
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context, query BusListQuery) ([]Bus, int64, error) {
	var fleet []Bus
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Bus{})

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&fleet).Error

	return fleet, totalCount, err
}

func (r *repository) SearchByRoute(ctx context.Context, source, destination string) ([]Bus, error) {
	var fleet []Bus
	err := r.db.WithContext(ctx).
		Where("LOWER(source) = ? AND LOWER(destination) = ?",
			strings.ToLower(strings.TrimSpace(source)),
			strings.ToLower(strings.TrimSpace(destination))).
		Order("departure_time ASC").
		Find(&fleet).Error
	return fleet, err
}

func (r *repository) BusNumberExists(ctx context.Context, busNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Bus{}).Where("bus_number = ?", busNumber).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
