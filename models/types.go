package models

// Health status values
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Request types

type CheckAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Response types

type AdminResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewAdminResponse(a Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Name: a.Name, Email: a.Email}
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Error response

type ErrorResponse struct {
	Detail string `json:"detail"`
}
