package dto

import (
	"time"

	"github.com/hugovasko/intern-com-backend/internal/models"
)

// UserResponse is the sanitized profile projection. Password hashes, CV
// bytes and billing identifiers never appear here.
type UserResponse struct {
	ID                  string          `json:"id"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	Email               *string         `json:"email"`
	Role                models.UserRole `json:"role"`
	PhoneNumber         string          `json:"phoneNumber,omitempty"`
	CompanyName         string          `json:"companyName,omitempty"`
	CompanyCoordinates  string          `json:"companyCoordinates,omitempty"`
	SubscriptionStatus  string          `json:"subscriptionStatus,omitempty"`
	SubscriptionEndDate *time.Time      `json:"subscriptionEndDate,omitempty"`
	HasCV               bool            `json:"hasCv"`
	CVFileName          string          `json:"cvFileName,omitempty"`
	CVUploadedAt        *time.Time      `json:"cvUploadedAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Role:                u.Role,
		PhoneNumber:         u.PhoneNumber,
		CompanyName:         u.CompanyName,
		CompanyCoordinates:  u.CompanyCoordinates,
		SubscriptionStatus:  u.SubscriptionStatus,
		SubscriptionEndDate: u.SubscriptionEndDate,
		HasCV:               u.HasCV() || u.CVFileName != "",
		CVFileName:          u.CVFileName,
		CVUploadedAt:        u.CVUploadedAt,
		CreatedAt:           u.CreatedAt,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// CompanyResponse is the public-safe company projection embedded in
// opportunity listings.
type CompanyResponse struct {
	ID                 string `json:"id"`
	CompanyName        string `json:"companyName"`
	CompanyCoordinates string `json:"companyCoordinates,omitempty"`
}

func NewCompanyResponse(u *models.User) *CompanyResponse {
	if u == nil {
		return nil
	}
	return &CompanyResponse{
		ID:                 u.ID,
		CompanyName:        u.CompanyName,
		CompanyCoordinates: u.CompanyCoordinates,
	}
}

// UpdateUserRequest uses pointers so omitted fields stay untouched.
type UpdateUserRequest struct {
	FirstName          *string `json:"firstName"`
	LastName           *string `json:"lastName"`
	Email              *string `json:"email" validate:"omitempty,email"`
	PhoneNumber        *string `json:"phoneNumber"`
	CompanyName        *string `json:"companyName"`
	CompanyCoordinates *string `json:"companyCoordinates"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=candidate partner admin"`
}

// PartnerCoordinatesResponse backs the public partner map.
type PartnerCoordinatesResponse struct {
	ID                 string  `json:"id"`
	CompanyName        string  `json:"companyName"`
	CompanyCoordinates string  `json:"companyCoordinates"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Email              *string `json:"email"`
	PhoneNumber        string  `json:"phoneNumber,omitempty"`
}

// UploadCVRequest carries the CV as base64 because the frontend sends
// JSON, not multipart.
type UploadCVRequest struct {
	FileName string `json:"fileName" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
	Data     string `json:"data" validate:"required,base64"`
}

// CVFile is the decoded download payload.
type CVFile struct {
	FileName string
	MimeType string
	Data     []byte
}
