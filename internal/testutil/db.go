// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"anoa.com/bloodconnect/internal/bootstrap"
	"anoa.com/bloodconnect/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database with roles seeded.
// A single connection serializes writers the way row locks would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedRoles(db))
	return db
}

func role(t *testing.T, db *gorm.DB, name string) *uint {
	t.Helper()
	var r entity.Role
	require.NoError(t, db.Where("name = ?", name).First(&r).Error)
	return &r.ID
}

// CreateAccount inserts an account with the given role and password "secret123".
func CreateAccount(t *testing.T, db *gorm.DB, email, roleName string) *entity.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	acc := &entity.Account{Email: email, PasswordHash: string(hash), RoleID: role(t, db, roleName)}
	require.NoError(t, db.Create(acc).Error)
	return acc
}

// CreateDonor inserts a donor account and profile.
func CreateDonor(t *testing.T, db *gorm.DB, name, bloodGroup string) *entity.DonorProfile {
	t.Helper()
	acc := CreateAccount(t, db, uuid.NewString()+"@donor.test", entity.RoleDonor)
	p := &entity.DonorProfile{
		AccountID:  acc.ID,
		FullName:   name,
		Age:        30,
		BloodGroup: bloodGroup,
		City:       "Pune",
		Address:    "12 MG Road",
		Phone:      "9876543210",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateHospital inserts a hospital account and hospital.
func CreateHospital(t *testing.T, db *gorm.DB, code, city string) *entity.Hospital {
	t.Helper()
	acc := CreateAccount(t, db, uuid.NewString()+"@hospital.test", entity.RoleHospital)
	h := &entity.Hospital{
		AccountID:    acc.ID,
		HospitalCode: code,
		Name:         "Hospital " + code,
		City:         city,
		Address:      "1 Health Street",
		Phone:        "0201234567",
		Email:        acc.Email,
	}
	require.NoError(t, db.Create(h).Error)
	return h
}

func Logger() *zap.Logger {
	return zap.NewNop()
}
