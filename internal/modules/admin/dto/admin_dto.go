package dto

type StatsResponse struct {
	Hospitals       int64 `json:"hospitals"`
	Donors          int64 `json:"donors"`
	PendingRequests int64 `json:"pending_requests"`
	Donations       int64 `json:"donations"`
}
