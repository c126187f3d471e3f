package donation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/donation/dto"
	"anoa.com/bloodconnect/internal/modules/donation/repository"
	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	fallbackHospital = "BloodConnect Partner Hospital"
	signatory        = "BloodConnect Authority"
)

type DonationService interface {
	History(ctx context.Context, donorID uuid.UUID) ([]dto.DonationResponse, error)
	Certificate(ctx context.Context, donorID, recordID uuid.UUID) (*dto.CertificateResponse, error)
}

type donationService struct {
	repo repository.DonationRepository
}

func NewDonationService(repo repository.DonationRepository) DonationService {
	return &donationService{repo: repo}
}

func (s *donationService) History(ctx context.Context, donorID uuid.UUID) ([]dto.DonationResponse, error) {
	records, err := s.repo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	res := make([]dto.DonationResponse, len(records))
	for i, rec := range records {
		name, city := hospitalOf(rec)
		res[i] = dto.DonationResponse{
			ID:           rec.ID,
			RequestID:    rec.RequestID,
			HospitalID:   rec.HospitalID,
			HospitalName: name,
			HospitalCity: city,
			BloodGroup:   rec.BloodGroup,
			DonationDate: rec.DonationDate,
		}
	}
	return res, nil
}

// Certificate returns certificate data for one of the donor's own donations.
// Records of other donors are reported as not found.
func (s *donationService) Certificate(ctx context.Context, donorID, recordID uuid.UUID) (*dto.CertificateResponse, error) {
	rec, err := s.repo.FindForDonor(ctx, donorID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	donor, err := s.repo.FindDonor(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	hospitalName, city := hospitalOf(*rec)
	date := rec.DonationDate.UTC()

	return &dto.CertificateResponse{
		Number:        certificateNumber(rec),
		DonorName:     donor.FullName,
		BloodGroup:    rec.BloodGroup,
		HospitalName:  hospitalName,
		HospitalCity:  city,
		DonationDate:  rec.DonationDate,
		FormattedDate: date.Format("January 2, 2006"),
		Statement: fmt.Sprintf("has voluntarily donated blood at %s and contributed to saving lives.",
			hospitalName),
		Signatory: signatory,
		FileName: fmt.Sprintf("BloodDonation_Certificate_%s_%s.pdf",
			strings.Join(strings.Fields(donor.FullName), "_"), date.Format("2006-01-02")),
	}, nil
}

func hospitalOf(rec entity.DonationRecord) (string, string) {
	if rec.Hospital == nil {
		return fallbackHospital, ""
	}
	return rec.Hospital.Name, rec.Hospital.City
}

func certificateNumber(rec *entity.DonationRecord) string {
	id := strings.ToUpper(strings.ReplaceAll(rec.ID.String(), "-", ""))
	return fmt.Sprintf("BC-%s-%s", rec.DonationDate.UTC().Format("20060102"), id[:8])
}
