package types

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for token login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the response body for token login
type LoginResponse struct {
	Token string `json:"token"`
}
