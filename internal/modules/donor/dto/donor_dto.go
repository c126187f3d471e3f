package dto

type UpdateProfileInput struct {
	FullName   *string `form:"full_name" json:"full_name" binding:"omitempty,min=2,max=100"`
	Age        *int    `form:"age" json:"age" binding:"omitempty,min=18,max=65"`
	BloodGroup *string `form:"blood_group" json:"blood_group" binding:"omitempty,bloodgroup"`
	City       *string `form:"city" json:"city" binding:"omitempty,min=2,max=100"`
	Address    *string `form:"address" json:"address" binding:"omitempty,min=5"`
	Phone      *string `form:"phone" json:"phone" binding:"omitempty,min=10,max=20"`
}
