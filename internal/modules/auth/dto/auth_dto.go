package dto

import (
	"anoa.com/bloodconnect/internal/entity"
	identity "anoa.com/bloodconnect/internal/modules/identity/service"
)

type RegisterDonorInput struct {
	Email      string `form:"email" json:"email" binding:"required,email"`
	Password   string `form:"password" json:"password" binding:"required,min=6"`
	FullName   string `form:"full_name" json:"full_name" binding:"required,min=2,max=100"`
	Age        int    `form:"age" json:"age" binding:"required,min=18,max=65"`
	BloodGroup string `form:"blood_group" json:"blood_group" binding:"required,bloodgroup"`
	City       string `form:"city" json:"city" binding:"required,min=2,max=100"`
	Address    string `form:"address" json:"address" binding:"required,min=5"`
	Phone      string `form:"phone" json:"phone" binding:"required,min=10,max=20"`
}

type RegisterHospitalInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	HospitalCode string `json:"hospital_code" binding:"required,min=3,max=50"`
	Name         string `json:"name" binding:"required,min=2,max=150"`
	City         string `json:"city" binding:"required,min=2,max=100"`
	Address      string `json:"address" binding:"required,min=5"`
	Phone        string `json:"phone" binding:"required,min=10,max=20"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresIn   int64             `json:"expires_in"`
	Account     *entity.Account   `json:"account"`
	Identity    identity.Identity `json:"identity"`
}

// MeResponse carries the resolved identity and, depending on the role, the
// donor profile or the hospital.
type MeResponse struct {
	Account  *entity.Account      `json:"account"`
	Identity identity.Identity    `json:"identity"`
	Profile  *entity.DonorProfile `json:"profile,omitempty"`
	Hospital *entity.Hospital     `json:"hospital,omitempty"`
}
