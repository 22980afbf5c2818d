package dto

// SignUpRequest is the body for POST /api/signup.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse is the login result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
