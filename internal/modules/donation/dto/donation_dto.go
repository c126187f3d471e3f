package dto

import (
	"time"

	"github.com/google/uuid"
)

type DonationResponse struct {
	ID           uuid.UUID  `json:"id"`
	RequestID    *uuid.UUID `json:"request_id,omitempty"`
	HospitalID   uuid.UUID  `json:"hospital_id"`
	HospitalName string     `json:"hospital_name"`
	HospitalCity string     `json:"hospital_city"`
	BloodGroup   string     `json:"blood_group"`
	DonationDate time.Time  `json:"donation_date"`
}

// CertificateResponse holds everything a client needs to render a donation
// certificate.
type CertificateResponse struct {
	Number        string    `json:"certificate_number"`
	DonorName     string    `json:"donor_name"`
	BloodGroup    string    `json:"blood_group"`
	HospitalName  string    `json:"hospital_name"`
	HospitalCity  string    `json:"hospital_city"`
	DonationDate  time.Time `json:"donation_date"`
	FormattedDate string    `json:"formatted_date"`
	Statement     string    `json:"statement"`
	Signatory     string    `json:"signatory"`
	FileName      string    `json:"file_name"`
}
