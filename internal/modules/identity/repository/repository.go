package repository

import (
	"context"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityRepository answers the existence probes used to resolve a role.
// Probes return gorm.ErrRecordNotFound when nothing matches.
type IdentityRepository interface {
	FindAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
	FindDonorProfileID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error)
	FindHospitalID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error)
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) FindAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	if err := r.db.WithContext(ctx).
		Preload("Role").
		First(&account, "id = ?", accountID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *identityRepository) FindDonorProfileID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	var profile entity.DonorProfile
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("account_id = ?", accountID).
		First(&profile).Error; err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}

func (r *identityRepository) FindHospitalID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	var hospital entity.Hospital
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("account_id = ?", accountID).
		First(&hospital).Error; err != nil {
		return uuid.Nil, err
	}
	return hospital.ID, nil
}
