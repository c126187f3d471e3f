package willingness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	notification "anoa.com/bloodconnect/internal/modules/notification/service"
	"anoa.com/bloodconnect/internal/modules/willingness/repository"
	"anoa.com/bloodconnect/pkg/apperror"
	"anoa.com/bloodconnect/pkg/ratelimit"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WillingnessService interface {
	Create(ctx context.Context, donorID uuid.UUID) (*entity.WillingnessRequest, error)
	ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.WillingnessRequest, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entity.WillingnessRequest, error)
	Respond(ctx context.Context, requestID, hospitalID uuid.UUID, decision string) (*entity.WillingnessRequest, error)
	ClearHistory(ctx context.Context, hospitalID uuid.UUID) (int64, error)
}

type willingnessService struct {
	repo     repository.WillingnessRepository
	notifier notification.NotificationService
	limiter  *ratelimit.Limiter
	log      *zap.Logger
	now      func() time.Time
}

// NewWillingnessService builds the registry. limiter may be nil to disable
// the per-donor broadcast cooldown.
func NewWillingnessService(
	repo repository.WillingnessRepository,
	notifier notification.NotificationService,
	limiter *ratelimit.Limiter,
	log *zap.Logger,
) WillingnessService {
	return &willingnessService{
		repo:     repo,
		notifier: notifier,
		limiter:  limiter,
		log:      log,
		now:      time.Now,
	}
}

func (s *willingnessService) Create(ctx context.Context, donorID uuid.UUID) (*entity.WillingnessRequest, error) {
	donor, err := s.repo.FindDonor(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if donor.BloodGroup == "" {
		return nil, fmt.Errorf("%w: profile incomplete, set your blood group first", apperror.ErrInvalidInput)
	}

	allowed, err := s.limiter.Allow(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := s.limiter.Remaining(ctx, donorID)
		return nil, &ratelimit.Error{
			Message:    fmt.Sprintf("you already broadcast recently. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	req := &entity.WillingnessRequest{
		DonorID:    donor.ID,
		DonorName:  donor.FullName,
		BloodGroup: donor.BloodGroup,
		City:       donor.City,
		Address:    donor.Address,
		Status:     entity.StatusPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		if resetErr := s.limiter.Reset(ctx, donorID); resetErr != nil {
			s.log.Warn("failed to reset rate limit", zap.Error(resetErr))
		}
		return nil, err
	}

	s.log.Info("willingness request created",
		zap.String("request_id", req.ID.String()),
		zap.String("donor_id", donorID.String()),
		zap.String("blood_group", req.BloodGroup),
	)

	if s.notifier != nil {
		s.notifier.NotifyWillingnessCreated(ctx, req)
	}
	return req, nil
}

func (s *willingnessService) ListForHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.WillingnessRequest, error) {
	return s.repo.ListForHospital(ctx, hospitalID)
}

func (s *willingnessService) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]entity.WillingnessRequest, error) {
	return s.repo.ListByDonor(ctx, donorID)
}

// Respond records a hospital's decision. Exactly one decision wins per
// request; later callers get a conflict and nothing is written.
func (s *willingnessService) Respond(ctx context.Context, requestID, hospitalID uuid.UUID, decision string) (*entity.WillingnessRequest, error) {
	if !entity.IsDecision(decision) {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", apperror.ErrInvalidInput)
	}

	req, err := s.repo.Respond(ctx, requestID, hospitalID, decision, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info("willingness request responded",
		zap.String("request_id", requestID.String()),
		zap.String("hospital_id", hospitalID.String()),
		zap.String("decision", decision),
	)
	return req, nil
}

func (s *willingnessService) ClearHistory(ctx context.Context, hospitalID uuid.UUID) (int64, error) {
	n, err := s.repo.DismissResponded(ctx, hospitalID, s.now().UTC())
	if err != nil {
		return 0, err
	}

	s.log.Debug("cleared responded requests", zap.String("hospital_id", hospitalID.String()), zap.Int64("count", n))
	return n, nil
}
