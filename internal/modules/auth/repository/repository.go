package repository

import (
	"context"
	"net/http"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	CreateDonor(ctx context.Context, account *entity.Account, profile *entity.DonorProfile) error
	CreateHospital(ctx context.Context, account *entity.Account, hospital *entity.Hospital) error
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindRoleByName(ctx context.Context, name string) (*entity.Role, error)
	FindProfileByAccount(ctx context.Context, accountID uuid.UUID) (*entity.DonorProfile, error)
	FindHospitalByAccount(ctx context.Context, accountID uuid.UUID) (*entity.Hospital, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateDonor(ctx context.Context, account *entity.Account, profile *entity.DonorProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, account.Email); err != nil {
			return err
		}
		if err := tx.Omit("Role").Create(account).Error; err != nil {
			return err
		}

		profile.AccountID = account.ID
		return tx.Create(profile).Error
	})
}

func (r *accountRepository) CreateHospital(ctx context.Context, account *entity.Account, hospital *entity.Hospital) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, account.Email); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&entity.Hospital{}).
			Where("hospital_code = ?", hospital.HospitalCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.New(http.StatusConflict, "hospital code already exists", apperror.ErrConflict)
		}

		if err := tx.Omit("Role").Create(account).Error; err != nil {
			return err
		}

		hospital.AccountID = account.ID
		return tx.Create(hospital).Error
	})
}

func ensureEmailFree(tx *gorm.DB, email string) error {
	var count int64
	if err := tx.Model(&entity.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperror.New(http.StatusConflict, "email already registered", apperror.ErrConflict)
	}
	return nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var account entity.Account
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	if err := r.db.WithContext(ctx).
		Preload("Role").
		First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *accountRepository) FindProfileByAccount(ctx context.Context, accountID uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *accountRepository) FindHospitalByAccount(ctx context.Context, accountID uuid.UUID) (*entity.Hospital, error) {
	var hospital entity.Hospital
	if err := r.db.WithContext(ctx).
		Preload("BloodStock").
		Where("account_id = ?", accountID).
		First(&hospital).Error; err != nil {
		return nil, err
	}
	return &hospital, nil
}
