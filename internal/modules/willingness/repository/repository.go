package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAlreadyResponded is returned when a request has left pending before
// the caller's decision could be applied.
var ErrAlreadyResponded = apperror.New(http.StatusConflict, "request already responded", apperror.ErrConflict)

type WillingnessRepository interface {
	FindDonor(ctx context.Context, donorID uuid.UUID) (*entity.DonorProfile, error)
	Create(ctx context.Context, req *entity.WillingnessRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WillingnessRequest, error)
	// ListForHospital returns every request the hospital has not dismissed,
	// newest first.
	ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.WillingnessRequest, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entity.WillingnessRequest, error)
	// Respond moves a pending request to decision and, for approvals, writes
	// the donation record in the same transaction.
	Respond(ctx context.Context, requestID, hospitalID uuid.UUID, decision string, at time.Time) (*entity.WillingnessRequest, error)
	// DismissResponded hides every non-pending request from the hospital's
	// list and returns how many were newly hidden.
	DismissResponded(ctx context.Context, hospitalID uuid.UUID, at time.Time) (int64, error)
}

type willingnessRepository struct {
	db *gorm.DB
}

func NewWillingnessRepository(db *gorm.DB) WillingnessRepository {
	return &willingnessRepository{db: db}
}

func (r *willingnessRepository) FindDonor(ctx context.Context, donorID uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", donorID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *willingnessRepository) Create(ctx context.Context, req *entity.WillingnessRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *willingnessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WillingnessRequest, error) {
	var req entity.WillingnessRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *willingnessRepository) ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.WillingnessRequest, error) {
	dismissed := r.db.WithContext(ctx).Model(&entity.RequestDismissal{}).
		Select("request_id").
		Where("hospital_id = ?", hospitalID)

	var reqs []entity.WillingnessRequest
	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", dismissed).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *willingnessRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entity.WillingnessRequest, error) {
	var reqs []entity.WillingnessRequest
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *willingnessRepository) Respond(ctx context.Context, requestID, hospitalID uuid.UUID, decision string, at time.Time) (*entity.WillingnessRequest, error) {
	var updated entity.WillingnessRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The status guard makes the transition happen at most once even
		// when hospitals race on the same request.
		res := tx.Model(&entity.WillingnessRequest{}).
			Where("id = ? AND status = ?", requestID, entity.StatusPending).
			Updates(map[string]interface{}{
				"status":       decision,
				"responded_by": hospitalID,
				"responded_at": at,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&entity.WillingnessRequest{}).
				Where("id = ?", requestID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperror.ErrNotFound
			}
			return ErrAlreadyResponded
		}

		if err := tx.First(&updated, "id = ?", requestID).Error; err != nil {
			return err
		}

		if decision != entity.StatusApproved {
			return nil
		}

		record := entity.DonationRecord{
			DonorID:      updated.DonorID,
			HospitalID:   hospitalID,
			RequestID:    &updated.ID,
			BloodGroup:   updated.BloodGroup,
			DonationDate: at,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return &updated, nil
}

func (r *willingnessRepository) DismissResponded(ctx context.Context, hospitalID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO notification_dismissals (hospital_id, request_id, created_at)
		SELECT ?, n.id, ?
		FROM donation_notifications n
		WHERE n.status <> ?
		  AND n.id NOT IN (
		    SELECT d.request_id FROM notification_dismissals d WHERE d.hospital_id = ?
		  )`,
		hospitalID, at, entity.StatusPending, hospitalID,
	)
	return res.RowsAffected, res.Error
}
