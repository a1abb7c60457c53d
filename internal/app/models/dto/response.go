package dto

// MessageResponse is a success envelope carrying only a message.
type MessageResponse struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message" example:"Operation completed successfully"`
}

// NewMessageResponse creates a success envelope with a message
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Error  bool   `json:"error" example:"false"`
	Status string `json:"status" example:"ok"`
}
