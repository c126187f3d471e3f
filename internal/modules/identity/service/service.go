package identity

import (
	"context"
	"errors"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/identity/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin      Role = entity.RoleAdmin
	RoleDonor      Role = entity.RoleDonor
	RoleHospital   Role = entity.RoleHospital
	RoleUnresolved Role = "unresolved"
)

// Identity is the resolved role of an authenticated account. At most one of
// ProfileID and HospitalID is set.
type Identity struct {
	AccountID  uuid.UUID  `json:"account_id"`
	Role       Role       `json:"role"`
	ProfileID  *uuid.UUID `json:"profile_id"`
	HospitalID *uuid.UUID `json:"hospital_id"`
}

type Resolver interface {
	// Resolve never fails: lookup errors degrade to RoleUnresolved.
	Resolve(ctx context.Context, accountID uuid.UUID) Identity
}

type resolver struct {
	repo repository.IdentityRepository
	log  *zap.Logger
}

func NewResolver(repo repository.IdentityRepository, log *zap.Logger) Resolver {
	return &resolver{repo: repo, log: log}
}

func (r *resolver) Resolve(ctx context.Context, accountID uuid.UUID) Identity {
	unresolved := Identity{AccountID: accountID, Role: RoleUnresolved}

	account, err := r.repo.FindAccount(ctx, accountID)
	if err != nil {
		r.logLookupError("account", accountID, err)
		return unresolved
	}
	if account.Role.Name == entity.RoleAdmin {
		return Identity{AccountID: accountID, Role: RoleAdmin}
	}

	profileID, err := r.repo.FindDonorProfileID(ctx, accountID)
	if err == nil {
		return Identity{AccountID: accountID, Role: RoleDonor, ProfileID: &profileID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logLookupError("profiles", accountID, err)
		return unresolved
	}

	hospitalID, err := r.repo.FindHospitalID(ctx, accountID)
	if err == nil {
		return Identity{AccountID: accountID, Role: RoleHospital, HospitalID: &hospitalID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logLookupError("hospitals", accountID, err)
	}

	return unresolved
}

func (r *resolver) logLookupError(table string, accountID uuid.UUID, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	r.log.Error("identity lookup failed",
		zap.String("table", table),
		zap.String("account_id", accountID.String()),
		zap.Error(err),
	)
}
