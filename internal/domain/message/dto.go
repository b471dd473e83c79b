package message

// SubmitRequest for POST /api/messages
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}
