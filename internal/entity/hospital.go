package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Hospital struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID    uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	HospitalCode string       `gorm:"column:hospital_code;size:50;uniqueIndex;not null" json:"hospital_code"`
	Name         string       `gorm:"size:150;not null" json:"name"`
	City         string       `gorm:"size:100;index" json:"city"`
	Address      string       `gorm:"type:text" json:"address"`
	Phone        string       `gorm:"size:20" json:"phone"`
	Email        string       `gorm:"size:100" json:"email"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	BloodStock   []StockEntry `gorm:"foreignKey:HospitalID;references:ID" json:"blood_stock,omitempty"`
}

func (h *Hospital) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// StockEntry is a manually maintained unit count per hospital and blood group.
type StockEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HospitalID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blood_stock_hospital_group" json:"hospital_id"`
	BloodGroup     string    `gorm:"size:3;not null;uniqueIndex:idx_blood_stock_hospital_group" json:"blood_group"`
	UnitsAvailable int       `gorm:"not null;default:0;check:units_available >= 0" json:"units_available"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StockEntry) TableName() string { return "blood_stock" }

func (s *StockEntry) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
