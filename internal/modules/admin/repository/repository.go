package repository

import (
	"context"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/admin/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	ListHospitals(ctx context.Context) ([]entity.Hospital, error)
	ListDonors(ctx context.Context) ([]entity.DonorProfile, error)
	ListRequests(ctx context.Context) ([]entity.WillingnessRequest, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	// DeleteHospital removes the hospital, its account and everything keyed
	// on it. Requests it answered keep their status.
	DeleteHospital(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	// DeleteDonor removes the profile, its account, requests and history.
	DeleteDonor(ctx context.Context, id uuid.UUID) (*entity.DonorProfile, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) ListHospitals(ctx context.Context) ([]entity.Hospital, error) {
	var hospitals []entity.Hospital
	err := r.db.WithContext(ctx).
		Preload("BloodStock").
		Order("created_at DESC").
		Find(&hospitals).Error
	return hospitals, err
}

func (r *adminRepository) ListDonors(ctx context.Context) ([]entity.DonorProfile, error) {
	var donors []entity.DonorProfile
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&donors).Error
	return donors, err
}

func (r *adminRepository) ListRequests(ctx context.Context) ([]entity.WillingnessRequest, error) {
	var reqs []entity.WillingnessRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *adminRepository) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var stats dto.StatsResponse
	db := r.db.WithContext(ctx)

	if err := db.Model(&entity.Hospital{}).Count(&stats.Hospitals).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.DonorProfile{}).Count(&stats.Donors).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.WillingnessRequest{}).
		Where("status = ?", entity.StatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.DonationRecord{}).Count(&stats.Donations).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *adminRepository) DeleteHospital(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	var hospital entity.Hospital

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&hospital, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("hospital_id = ?", id).Delete(&entity.StockEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hospital_id = ?", id).Delete(&entity.DonationRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hospital_id = ?", id).Delete(&entity.RequestDismissal{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.WillingnessRequest{}).
			Where("responded_by = ?", id).
			Update("responded_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Hospital{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Account{}, "id = ?", hospital.AccountID).Error
	})
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *adminRepository) DeleteDonor(ctx context.Context, id uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&profile, "id = ?", id).Error; err != nil {
			return err
		}

		requests := tx.Model(&entity.WillingnessRequest{}).Select("id").Where("donor_id = ?", id)
		if err := tx.Where("request_id IN (?)", requests).Delete(&entity.RequestDismissal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("donor_id = ?", id).Delete(&entity.DonationRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("donor_id = ?", id).Delete(&entity.WillingnessRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.DonorProfile{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Account{}, "id = ?", profile.AccountID).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
