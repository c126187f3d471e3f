package dto

type RespondInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type ClearHistoryResponse struct {
	Cleared int64 `json:"cleared"`
}
