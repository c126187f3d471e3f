package repository

import (
	"context"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	// Upsert writes the unit count for one blood group in a single statement.
	Upsert(ctx context.Context, hospitalID uuid.UUID, bloodGroup string, units int) (*entity.StockEntry, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.StockEntry, error)
	FindHospitalWithStock(ctx context.Context, hospitalID uuid.UUID) (*entity.Hospital, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Upsert(ctx context.Context, hospitalID uuid.UUID, bloodGroup string, units int) (*entity.StockEntry, error) {
	entry := entity.StockEntry{
		HospitalID:     hospitalID,
		BloodGroup:     bloodGroup,
		UnitsAvailable: units,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hospital_id"}, {Name: "blood_group"}},
		DoUpdates: clause.AssignmentColumns([]string{"units_available", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	var saved entity.StockEntry
	if err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND blood_group = ?", hospitalID, bloodGroup).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *stockRepository) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.StockEntry, error) {
	var entries []entity.StockEntry
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("blood_group ASC").
		Find(&entries).Error
	return entries, err
}

func (r *stockRepository) FindHospitalWithStock(ctx context.Context, hospitalID uuid.UUID) (*entity.Hospital, error) {
	var hospital entity.Hospital
	if err := r.db.WithContext(ctx).
		Preload("BloodStock").
		First(&hospital, "id = ?", hospitalID).Error; err != nil {
		return nil, err
	}
	return &hospital, nil
}
