package admin

import (
	"context"
	"errors"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/admin/dto"
	"anoa.com/bloodconnect/internal/modules/admin/repository"
	search "anoa.com/bloodconnect/internal/modules/search/service"
	"anoa.com/bloodconnect/pkg/apperror"
	"anoa.com/bloodconnect/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminService interface {
	ListHospitals(ctx context.Context) ([]entity.Hospital, error)
	ListDonors(ctx context.Context) ([]entity.DonorProfile, error)
	ListRequests(ctx context.Context) ([]entity.WillingnessRequest, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	DeleteHospital(ctx context.Context, id uuid.UUID) error
	DeleteDonor(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	repo         repository.AdminRepository
	index        search.HospitalIndex
	imageStorage storage.ImageStorage
	log          *zap.Logger
}

func NewAdminService(repo repository.AdminRepository, index search.HospitalIndex, imageStorage storage.ImageStorage, log *zap.Logger) AdminService {
	return &adminService{
		repo:         repo,
		index:        index,
		imageStorage: imageStorage,
		log:          log,
	}
}

func (s *adminService) ListHospitals(ctx context.Context) ([]entity.Hospital, error) {
	return s.repo.ListHospitals(ctx)
}

func (s *adminService) ListDonors(ctx context.Context) ([]entity.DonorProfile, error) {
	return s.repo.ListDonors(ctx)
}

func (s *adminService) ListRequests(ctx context.Context) ([]entity.WillingnessRequest, error) {
	return s.repo.ListRequests(ctx)
}

func (s *adminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	return s.repo.Stats(ctx)
}

func (s *adminService) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	hospital, err := s.repo.DeleteHospital(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	s.log.Info("hospital deleted",
		zap.String("hospital_id", hospital.ID.String()),
		zap.String("code", hospital.HospitalCode),
	)

	if s.index != nil {
		if err := s.index.DeleteHospital(hospital.ID); err != nil {
			s.log.Warn("failed to remove hospital from search index", zap.String("hospital_id", hospital.ID.String()), zap.Error(err))
		}
	}
	return nil
}

func (s *adminService) DeleteDonor(ctx context.Context, id uuid.UUID) error {
	profile, err := s.repo.DeleteDonor(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	s.log.Info("donor deleted", zap.String("donor_id", profile.ID.String()))

	if profile.AvatarURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *profile.AvatarURL); err != nil {
			s.log.Warn("failed to delete donor avatar", zap.String("donor_id", profile.ID.String()), zap.Error(err))
		}
	}
	return nil
}
