package repository

import (
	"context"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DonorProfile, error)
	Update(ctx context.Context, profile *entity.DonorProfile) error
}

type donorRepository struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &donorRepository{db: db}
}

func (r *donorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *donorRepository) Update(ctx context.Context, profile *entity.DonorProfile) error {
	return r.db.WithContext(ctx).
		Model(profile).
		Select("full_name", "age", "blood_group", "city", "address", "phone", "avatar_url", "updated_at").
		Updates(profile).Error
}
