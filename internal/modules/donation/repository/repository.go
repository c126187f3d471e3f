package repository

import (
	"context"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRepository interface {
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entity.DonationRecord, error)
	FindForDonor(ctx context.Context, donorID, recordID uuid.UUID) (*entity.DonationRecord, error)
	FindDonor(ctx context.Context, donorID uuid.UUID) (*entity.DonorProfile, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entity.DonationRecord, error) {
	var records []entity.DonationRecord
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Where("donor_id = ?", donorID).
		Order("donation_date DESC").
		Find(&records).Error
	return records, err
}

// FindForDonor only matches records owned by donorID.
func (r *donationRepository) FindForDonor(ctx context.Context, donorID, recordID uuid.UUID) (*entity.DonationRecord, error) {
	var record entity.DonationRecord
	if err := r.db.WithContext(ctx).
		Preload("Hospital").
		Where("id = ? AND donor_id = ?", recordID, donorID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *donationRepository) FindDonor(ctx context.Context, donorID uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", donorID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
