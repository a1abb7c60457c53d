package dto

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message" example:"Login successful"`
	// Token is a bearer token; it is required on admin routes only when token enforcement is enabled.
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expiresIn" example:"43200"`
}
