package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationRecord is created only by approving a willingness request and is
// never updated afterwards.
type DonationRecord struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"donor_id"`
	HospitalID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"hospital_id"`
	RequestID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"request_id,omitempty"`
	BloodGroup   string     `gorm:"size:3;not null" json:"blood_group"`
	DonationDate time.Time  `gorm:"not null;index" json:"donation_date"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Hospital     *Hospital  `gorm:"foreignKey:HospitalID;references:ID;constraint:OnDelete:CASCADE" json:"hospital,omitempty"`
}

func (DonationRecord) TableName() string { return "donation_history" }

func (d *DonationRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
