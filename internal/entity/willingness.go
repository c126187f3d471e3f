package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// IsDecision reports whether s is a terminal status a hospital may choose.
func IsDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// WillingnessRequest is a donor's broadcast offer to donate. Status leaves
// pending at most once.
type WillingnessRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"donor_id"`
	DonorName   string     `gorm:"size:100;not null" json:"donor_name"`
	BloodGroup  string     `gorm:"size:3;not null" json:"blood_group"`
	City        string     `gorm:"size:100" json:"city"`
	Address     string     `gorm:"type:text" json:"address"`
	Status      string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	RespondedBy *uuid.UUID `gorm:"type:uuid;index" json:"responded_by"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (WillingnessRequest) TableName() string { return "donation_notifications" }

func (w *WillingnessRequest) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// RequestDismissal hides a responded request from one hospital's list.
type RequestDismissal struct {
	HospitalID uuid.UUID `gorm:"type:uuid;primaryKey" json:"hospital_id"`
	RequestID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"request_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RequestDismissal) TableName() string { return "notification_dismissals" }
