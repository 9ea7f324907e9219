package dto

// RegisterRequest covers both candidate and partner signup. Admin
// accounts are never self-registered.
type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"omitempty,oneof=candidate partner"`
	PhoneNumber string `json:"phoneNumber"`

	// Partner-only fields
	CompanyName        string `json:"companyName"`
	CompanyCoordinates string `json:"companyCoordinates"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GithubLoginRequest carries the OAuth authorization code from the
// frontend callback.
type GithubLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
