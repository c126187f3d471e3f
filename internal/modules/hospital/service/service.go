package hospital

import (
	"context"
	"errors"
	"strings"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/hospital/repository"
	search "anoa.com/bloodconnect/internal/modules/search/service"
	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HospitalService interface {
	GetHospital(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	// Directory lists hospitals with their stock, optionally filtered by a
	// city substring.
	Directory(ctx context.Context, city string) ([]entity.Hospital, error)
}

type hospitalService struct {
	repo  repository.HospitalRepository
	index search.HospitalIndex
	log   *zap.Logger
}

// NewHospitalService falls back to database queries when index is nil.
func NewHospitalService(repo repository.HospitalRepository, index search.HospitalIndex, log *zap.Logger) HospitalService {
	return &hospitalService{repo: repo, index: index, log: log}
}

func (s *hospitalService) GetHospital(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	h, err := s.repo.FindWithStock(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *hospitalService) Directory(ctx context.Context, city string) ([]entity.Hospital, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return s.repo.ListAllWithStock(ctx)
	}

	if s.index != nil {
		ids, err := s.index.SearchCity(city)
		if err == nil {
			return s.repo.FindByIDsWithStock(ctx, ids)
		}
		s.log.Warn("hospital search failed, falling back to database", zap.String("city", city), zap.Error(err))
	}

	return s.repo.ListByCity(ctx, city)
}
