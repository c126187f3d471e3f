package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonorProfile is the donor-side profile, one per donor account.
type DonorProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName   string    `gorm:"size:100;not null" json:"full_name"`
	Age        int       `gorm:"not null" json:"age"`
	BloodGroup string    `gorm:"size:3" json:"blood_group"`
	City       string    `gorm:"size:100;index" json:"city"`
	Address    string    `gorm:"type:text" json:"address"`
	Phone      string    `gorm:"size:20" json:"phone"`
	AvatarURL  *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DonorProfile) TableName() string { return "profiles" }

func (p *DonorProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
