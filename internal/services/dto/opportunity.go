package dto

import (
	"time"

	"github.com/hugovasko/intern-com-backend/internal/models"
)

type CreateOpportunityRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Salary      int    `json:"salary" validate:"omitempty,min=0"`
	Type        string `json:"type" validate:"required"`
	Field       string `json:"field"`

	// PartnerID lets an admin create a posting on behalf of a partner.
	PartnerID string `json:"partnerId"`
}

type UpdateOpportunityRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Salary      *int    `json:"salary" validate:"omitempty,min=0"`
	Type        *string `json:"type"`
	Field       *string `json:"field"`
}

type OpportunityResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Salary      int              `json:"salary,omitempty"`
	Type        string           `json:"type"`
	Field       string           `json:"field,omitempty"`
	CompanyID   string           `json:"companyId"`
	Company     *CompanyResponse `json:"company,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func NewOpportunityResponse(o *models.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Location:    o.Location,
		Salary:      o.Salary,
		Type:        o.Type,
		Field:       o.Field,
		CompanyID:   o.CompanyID,
		Company:     NewCompanyResponse(o.Company),
		CreatedAt:   o.CreatedAt,
	}
}

func NewOpportunityResponses(opportunities []models.Opportunity) []OpportunityResponse {
	out := make([]OpportunityResponse, 0, len(opportunities))
	for i := range opportunities {
		out = append(out, NewOpportunityResponse(&opportunities[i]))
	}
	return out
}
