package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/auth/dto"
	"anoa.com/bloodconnect/internal/modules/auth/repository"
	identity "anoa.com/bloodconnect/internal/modules/identity/service"
	search "anoa.com/bloodconnect/internal/modules/search/service"
	"anoa.com/bloodconnect/pkg/apperror"
	commonDto "anoa.com/bloodconnect/pkg/dto"
	"anoa.com/bloodconnect/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const AvatarFolder = "avatars"

var errInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)

type AuthService interface {
	RegisterDonor(ctx context.Context, input dto.RegisterDonorInput, avatar *commonDto.AvatarFile) (*dto.AuthResponse, error)
	RegisterHospital(ctx context.Context, input dto.RegisterHospitalInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, accountID uuid.UUID) (*dto.MeResponse, error)
}

type Options struct {
	Secret   string
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type authService struct {
	repo         repository.AccountRepository
	resolver     identity.Resolver
	imageStorage storage.ImageStorage
	index        search.HospitalIndex
	opts         Options
	log          *zap.Logger
}

// NewAuthService wires account registration and login. imageStorage and index
// may be nil when Cloudinary or Meilisearch are not configured.
func NewAuthService(
	repo repository.AccountRepository,
	resolver identity.Resolver,
	imageStorage storage.ImageStorage,
	index search.HospitalIndex,
	opts Options,
	log *zap.Logger,
) AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		repo:         repo,
		resolver:     resolver,
		imageStorage: imageStorage,
		index:        index,
		opts:         opts,
		log:          log,
	}
}

func (s *authService) RegisterDonor(ctx context.Context, input dto.RegisterDonorInput, avatar *commonDto.AvatarFile) (*dto.AuthResponse, error) {
	account, err := s.newAccount(ctx, input.Email, input.Password, entity.RoleDonor)
	if err != nil {
		return nil, err
	}

	profile := &entity.DonorProfile{
		FullName:   strings.TrimSpace(input.FullName),
		Age:        input.Age,
		BloodGroup: input.BloodGroup,
		City:       strings.TrimSpace(input.City),
		Address:    strings.TrimSpace(input.Address),
		Phone:      strings.TrimSpace(input.Phone),
	}

	if avatar != nil {
		if s.imageStorage == nil {
			return nil, apperror.New(http.StatusBadRequest, "avatar uploads are not available", apperror.ErrBadRequest)
		}
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, AvatarFolder, account.ID.String())
		if err != nil {
			return nil, apperror.New(http.StatusBadGateway, "failed to upload avatar", err)
		}
		profile.AvatarURL = &url
	}

	if err := s.repo.CreateDonor(ctx, account, profile); err != nil {
		if profile.AvatarURL != nil {
			if delErr := s.imageStorage.DeleteImage(ctx, *profile.AvatarURL); delErr != nil {
				s.log.Warn("failed to remove orphaned avatar", zap.String("url", *profile.AvatarURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	s.log.Info("donor registered", zap.String("account_id", account.ID.String()))
	return s.buildAuthResponse(ctx, account)
}

func (s *authService) RegisterHospital(ctx context.Context, input dto.RegisterHospitalInput) (*dto.AuthResponse, error) {
	account, err := s.newAccount(ctx, input.Email, input.Password, entity.RoleHospital)
	if err != nil {
		return nil, err
	}

	hospital := &entity.Hospital{
		HospitalCode: strings.TrimSpace(input.HospitalCode),
		Name:         strings.TrimSpace(input.Name),
		City:         strings.TrimSpace(input.City),
		Address:      strings.TrimSpace(input.Address),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        account.Email,
	}

	if err := s.repo.CreateHospital(ctx, account, hospital); err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.IndexHospitals(*hospital); err != nil {
			s.log.Warn("failed to index hospital", zap.String("hospital_id", hospital.ID.String()), zap.Error(err))
		}
	}

	s.log.Info("hospital registered",
		zap.String("account_id", account.ID.String()),
		zap.String("hospital_code", hospital.HospitalCode),
	)
	return s.buildAuthResponse(ctx, account)
}

func (s *authService) newAccount(ctx context.Context, email, password, roleName string) (*entity.Account, error) {
	role, err := s.repo.FindRoleByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &entity.Account{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hashed),
		RoleID:       &role.ID,
		Role:         *role,
	}, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	account, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.buildAuthResponse(ctx, account)
}

func (s *authService) Me(ctx context.Context, accountID uuid.UUID) (*dto.MeResponse, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	res := &dto.MeResponse{
		Account:  account,
		Identity: s.resolver.Resolve(ctx, accountID),
	}

	switch res.Identity.Role {
	case identity.RoleDonor:
		if res.Profile, err = s.repo.FindProfileByAccount(ctx, accountID); err != nil {
			return nil, err
		}
	case identity.RoleHospital:
		if res.Hospital, err = s.repo.FindHospitalByAccount(ctx, accountID); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (s *authService) buildAuthResponse(ctx context.Context, account *entity.Account) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		Account:     account,
		Identity:    s.resolver.Resolve(ctx, account.ID),
	}, nil
}

func (s *authService) generateToken(account *entity.Account) (string, int64, error) {
	expiresAt := time.Now().Add(s.opts.TokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   account.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.opts.Secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
