package repository

import (
	"context"
	"strings"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HospitalRepository interface {
	FindWithStock(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	FindByIDsWithStock(ctx context.Context, ids []uuid.UUID) ([]entity.Hospital, error)
	// ListByCity matches city case-insensitively as a substring.
	ListByCity(ctx context.Context, city string) ([]entity.Hospital, error)
	ListAllWithStock(ctx context.Context) ([]entity.Hospital, error)
}

type hospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) HospitalRepository {
	return &hospitalRepository{db: db}
}

func (r *hospitalRepository) withStock(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("BloodStock", func(db *gorm.DB) *gorm.DB {
		return db.Order("blood_group ASC")
	})
}

func (r *hospitalRepository) FindWithStock(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	var hospital entity.Hospital
	if err := r.withStock(ctx).First(&hospital, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindByIDsWithStock(ctx context.Context, ids []uuid.UUID) ([]entity.Hospital, error) {
	if len(ids) == 0 {
		return []entity.Hospital{}, nil
	}
	var hospitals []entity.Hospital
	err := r.withStock(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&hospitals).Error
	return hospitals, err
}

func (r *hospitalRepository) ListByCity(ctx context.Context, city string) ([]entity.Hospital, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(city))) + "%"

	var hospitals []entity.Hospital
	err := r.withStock(ctx).
		Where("LOWER(city) LIKE ? ESCAPE '\\'", pattern).
		Order("name ASC").
		Find(&hospitals).Error
	return hospitals, err
}

func (r *hospitalRepository) ListAllWithStock(ctx context.Context) ([]entity.Hospital, error) {
	var hospitals []entity.Hospital
	err := r.withStock(ctx).Order("name ASC").Find(&hospitals).Error
	return hospitals, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
