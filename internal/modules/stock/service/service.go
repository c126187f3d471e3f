package stock

import (
	"context"
	"fmt"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/stock/repository"
	search "anoa.com/bloodconnect/internal/modules/search/service"
	"anoa.com/bloodconnect/pkg/apperror"
	"anoa.com/bloodconnect/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StockService interface {
	SetStock(ctx context.Context, hospitalID uuid.UUID, bloodGroup string, units int) (*entity.StockEntry, error)
	ListStock(ctx context.Context, hospitalID uuid.UUID) ([]entity.StockEntry, error)
}

type stockService struct {
	repo  repository.StockRepository
	index search.HospitalIndex
	log   *zap.Logger
}

func NewStockService(repo repository.StockRepository, index search.HospitalIndex, log *zap.Logger) StockService {
	return &stockService{repo: repo, index: index, log: log}
}

// SetStock overwrites the unit count. Concurrent writers for the same group
// resolve to whichever commits last.
func (s *stockService) SetStock(ctx context.Context, hospitalID uuid.UUID, bloodGroup string, units int) (*entity.StockEntry, error) {
	if !validator.IsBloodGroup(bloodGroup) {
		return nil, fmt.Errorf("%w: unknown blood group %q", apperror.ErrInvalidInput, bloodGroup)
	}
	if units < 0 {
		return nil, fmt.Errorf("%w: units available cannot be negative", apperror.ErrInvalidInput)
	}

	entry, err := s.repo.Upsert(ctx, hospitalID, bloodGroup, units)
	if err != nil {
		return nil, err
	}

	s.refreshIndex(ctx, hospitalID)
	return entry, nil
}

func (s *stockService) ListStock(ctx context.Context, hospitalID uuid.UUID) ([]entity.StockEntry, error) {
	return s.repo.ListByHospital(ctx, hospitalID)
}

func (s *stockService) refreshIndex(ctx context.Context, hospitalID uuid.UUID) {
	if s.index == nil {
		return
	}

	hospital, err := s.repo.FindHospitalWithStock(ctx, hospitalID)
	if err == nil {
		err = s.index.IndexHospitals(*hospital)
	}
	if err != nil {
		s.log.Warn("failed to refresh hospital search document",
			zap.String("hospital_id", hospitalID.String()),
			zap.Error(err),
		)
	}
}
