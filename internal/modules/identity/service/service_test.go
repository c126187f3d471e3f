package identity

import (
	"context"
	"errors"
	"testing"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/identity/repository"
	"anoa.com/bloodconnect/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestResolveDonor(t *testing.T) {
	db := testutil.NewDB(t)
	donor := testutil.CreateDonor(t, db, "Asha", "O-")
	r := NewResolver(repository.NewIdentityRepository(db), zap.NewNop())

	id := r.Resolve(context.Background(), donor.AccountID)

	assert.Equal(t, RoleDonor, id.Role)
	require.NotNil(t, id.ProfileID)
	assert.Equal(t, donor.ID, *id.ProfileID)
	assert.Nil(t, id.HospitalID)
}

func TestResolveHospital(t *testing.T) {
	db := testutil.NewDB(t)
	h := testutil.CreateHospital(t, db, "H-001", "Pune")
	r := NewResolver(repository.NewIdentityRepository(db), zap.NewNop())

	id := r.Resolve(context.Background(), h.AccountID)

	assert.Equal(t, RoleHospital, id.Role)
	require.NotNil(t, id.HospitalID)
	assert.Equal(t, h.ID, *id.HospitalID)
	assert.Nil(t, id.ProfileID)
}

func TestResolveAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateAccount(t, db, "admin@bloodconnect.test", entity.RoleAdmin)
	r := NewResolver(repository.NewIdentityRepository(db), zap.NewNop())

	id := r.Resolve(context.Background(), admin.ID)
	assert.Equal(t, RoleAdmin, id.Role)
}

func TestResolveUnresolved(t *testing.T) {
	db := testutil.NewDB(t)
	orphan := testutil.CreateAccount(t, db, "orphan@bloodconnect.test", entity.RoleDonor)
	r := NewResolver(repository.NewIdentityRepository(db), zap.NewNop())

	assert.Equal(t, RoleUnresolved, r.Resolve(context.Background(), orphan.ID).Role)
	assert.Equal(t, RoleUnresolved, r.Resolve(context.Background(), uuid.New()).Role)
}

type failingRepo struct {
	repository.IdentityRepository
	account *entity.Account
	err     error
}

func (f failingRepo) FindAccount(context.Context, uuid.UUID) (*entity.Account, error) {
	return f.account, nil
}

func (f failingRepo) FindDonorProfileID(context.Context, uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, f.err
}

func (f failingRepo) FindHospitalID(context.Context, uuid.UUID) (uuid.UUID, error) {
	return uuid.New(), nil
}

func TestResolveSwallowsLookupErrors(t *testing.T) {
	repo := failingRepo{account: &entity.Account{}, err: errors.New("connection reset")}
	r := NewResolver(repo, zap.NewNop())

	id := r.Resolve(context.Background(), uuid.New())
	assert.Equal(t, RoleUnresolved, id.Role)
	assert.Nil(t, id.HospitalID)
}

func TestResolveFallsThroughToHospitalOnNotFound(t *testing.T) {
	repo := failingRepo{account: &entity.Account{}, err: gorm.ErrRecordNotFound}
	r := NewResolver(repo, zap.NewNop())

	assert.Equal(t, RoleHospital, r.Resolve(context.Background(), uuid.New()).Role)
}
