package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"anoa.com/bloodconnect/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.Account{},
		&entity.DonorProfile{},
		&entity.Hospital{},
		&entity.StockEntry{},
		&entity.WillingnessRequest{},
		&entity.RequestDismissal{},
		&entity.DonationRecord{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: entity.RoleAdmin, Description: "Platform administrator"},
		{Name: entity.RoleDonor, Description: "Blood donor"},
		{Name: entity.RoleHospital, Description: "Hospital staff"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdmin creates the administrator account when credentials are configured
// and no account with that email exists yet.
func SeedAdmin(db *gorm.DB, email, password string, log *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var adminRole entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&adminRole).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("admin role missing, run SeedRoles first")
		}
		return err
	}

	var count int64
	if err := db.Model(&entity.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info("admin account already exists, skipping seed", zap.String("email", email))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.Account{
		Email:        email,
		PasswordHash: string(hashed),
		RoleID:       &adminRole.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("admin account seeded", zap.String("email", email))
	return nil
}
