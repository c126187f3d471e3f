package dto

type SetStockInput struct {
	BloodGroup     string `json:"blood_group" binding:"required,bloodgroup"`
	UnitsAvailable *int   `json:"units_available" binding:"required,min=0"`
}
