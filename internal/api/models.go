package api

// Common request/response structures

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the signed bearer token for subsequent requests
	Token string `json:"token"`

	// ExpiresInHours is the validity window of the token
	ExpiresInHours int `json:"expires_in_hours"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required"`
}

// UpdateTaskRequest defines the payload for updating a task.
// Omitted fields leave the stored values unchanged and are not validated.
type UpdateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}
