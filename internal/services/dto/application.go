package dto

import (
	"time"

	"github.com/hugovasko/intern-com-backend/internal/models"
)

type CreateApplicationRequest struct {
	OpportunityID string `json:"opportunityId" validate:"required"`
	Message       string `json:"message"`
}

// UpdateApplicationRequest allows status and reviewer note changes only.
type UpdateApplicationRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending accepted rejected"`
	Note   *string `json:"note"`
}

// ApplicantResponse narrows the candidate to what a reviewing partner
// needs. CV bytes stay behind the download endpoint.
type ApplicantResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       *string `json:"email"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	HasCV       bool    `json:"hasCv"`
	CVFileName  string  `json:"cvFileName,omitempty"`
}

func newApplicantResponse(u *models.User) *ApplicantResponse {
	if u == nil {
		return nil
	}
	return &ApplicantResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		HasCV:       u.HasCV() || u.CVFileName != "",
		CVFileName:  u.CVFileName,
	}
}

type ApplicationResponse struct {
	ID            string                   `json:"id"`
	CandidateID   string                   `json:"candidateId"`
	OpportunityID string                   `json:"opportunityId"`
	Status        models.ApplicationStatus `json:"status"`
	Message       string                   `json:"message,omitempty"`
	Note          string                   `json:"note,omitempty"`
	Candidate     *ApplicantResponse       `json:"candidate,omitempty"`
	Opportunity   *OpportunityResponse     `json:"opportunity,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
}

func NewApplicationResponse(a *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:            a.ID,
		CandidateID:   a.CandidateID,
		OpportunityID: a.OpportunityID,
		Status:        a.Status,
		Message:       a.Message,
		Note:          a.Note,
		Candidate:     newApplicantResponse(a.Candidate),
		CreatedAt:     a.CreatedAt,
	}
	if a.Opportunity != nil {
		opp := NewOpportunityResponse(a.Opportunity)
		resp.Opportunity = &opp
	}
	return resp
}

func NewApplicationResponses(applications []models.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, NewApplicationResponse(&applications[i]))
	}
	return out
}
