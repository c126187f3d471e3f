package donor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/donor/dto"
	"anoa.com/bloodconnect/internal/modules/donor/repository"
	"anoa.com/bloodconnect/pkg/apperror"
	commonDto "anoa.com/bloodconnect/pkg/dto"
	"anoa.com/bloodconnect/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const avatarFolder = "avatars"

type DonorService interface {
	GetProfile(ctx context.Context, donorID uuid.UUID) (*entity.DonorProfile, error)
	UpdateProfile(ctx context.Context, donorID uuid.UUID, input dto.UpdateProfileInput, avatar *commonDto.AvatarFile) (*entity.DonorProfile, error)
}

type donorService struct {
	repo         repository.DonorRepository
	imageStorage storage.ImageStorage
	log          *zap.Logger
	now          func() time.Time
}

func NewDonorService(repo repository.DonorRepository, imageStorage storage.ImageStorage, log *zap.Logger) DonorService {
	return &donorService{
		repo:         repo,
		imageStorage: imageStorage,
		log:          log,
		now:          time.Now,
	}
}

func (s *donorService) GetProfile(ctx context.Context, donorID uuid.UUID) (*entity.DonorProfile, error) {
	profile, err := s.repo.FindByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *donorService) UpdateProfile(ctx context.Context, donorID uuid.UUID, input dto.UpdateProfileInput, avatar *commonDto.AvatarFile) (*entity.DonorProfile, error) {
	profile, err := s.GetProfile(ctx, donorID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		profile.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Age != nil {
		profile.Age = *input.Age
	}
	if input.BloodGroup != nil {
		profile.BloodGroup = *input.BloodGroup
	}
	if input.City != nil {
		profile.City = strings.TrimSpace(*input.City)
	}
	if input.Address != nil {
		profile.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		profile.Phone = strings.TrimSpace(*input.Phone)
	}

	var oldAvatar *string
	if avatar != nil {
		if s.imageStorage == nil {
			return nil, apperror.New(http.StatusBadRequest, "avatar uploads are not available", apperror.ErrBadRequest)
		}
		// A fresh public ID per upload keeps the old image addressable for
		// cleanup below.
		publicID := fmt.Sprintf("%s-%d", profile.AccountID, s.now().Unix())
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, avatarFolder, publicID)
		if err != nil {
			return nil, apperror.New(http.StatusBadGateway, "failed to upload avatar", err)
		}
		oldAvatar = profile.AvatarURL
		profile.AvatarURL = &url
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	if oldAvatar != nil && *oldAvatar != *profile.AvatarURL {
		if err := s.imageStorage.DeleteImage(ctx, *oldAvatar); err != nil {
			s.log.Warn("failed to delete previous avatar", zap.String("url", *oldAvatar), zap.Error(err))
		}
	}

	return profile, nil
}
