package models

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
	ExpiresIn   int    `json:"expires_in"` // seconds
	User        User   `json:"user"`
}

type SignupResponse struct {
	OK   bool `json:"ok"`
	User User `json:"user"`
}
