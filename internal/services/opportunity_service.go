package services

import (
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

type OpportunityService interface {
	FindAll(field string) ([]dto.OpportunityResponse, error)
	FindOne(id string) (*dto.OpportunityResponse, error)
	FindByCompany(companyID string) ([]dto.OpportunityResponse, error)
	Create(actorID string, actorRole models.UserRole, req *dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error)
	Update(actorID string, actorRole models.UserRole, id string, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error)
	Delete(actorID string, actorRole models.UserRole, id string) error
}

type OpportunityServiceImpl struct {
	opportunityRepo repositories.OpportunityRepository
	userRepo        repositories.UserRepository
	subscriptions   SubscriptionService
}

func NewOpportunityService(
	opportunityRepo repositories.OpportunityRepository,
	userRepo repositories.UserRepository,
	subscriptions SubscriptionService,
) OpportunityService {
	return &OpportunityServiceImpl{
		opportunityRepo: opportunityRepo,
		userRepo:        userRepo,
		subscriptions:   subscriptions,
	}
}

// FindAll lists postings from companies with an active subscription only.
func (s *OpportunityServiceImpl) FindAll(field string) ([]dto.OpportunityResponse, error) {
	opportunities, err := s.opportunityRepo.FindAllActive(field)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewOpportunityResponses(opportunities), nil
}

func (s *OpportunityServiceImpl) FindOne(id string) (*dto.OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOpportunityNotFound) {
			return nil, apperrors.NewNotFoundError("opportunity", "Opportunity not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// A posting whose owner lost its subscription is gone from the
	// public site, indistinguishable from a missing one.
	if opportunity.Company == nil || opportunity.Company.SubscriptionStatus != models.SubscriptionStatusActive {
		return nil, apperrors.ErrOpportunityUnavailable
	}

	resp := dto.NewOpportunityResponse(opportunity)
	return &resp, nil
}

func (s *OpportunityServiceImpl) FindByCompany(companyID string) ([]dto.OpportunityResponse, error) {
	opportunities, err := s.opportunityRepo.FindByCompany(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewOpportunityResponses(opportunities), nil
}

func (s *OpportunityServiceImpl) Create(actorID string, actorRole models.UserRole, req *dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	companyID := actorID
	if actorRole == models.UserRoleAdmin && req.PartnerID != "" {
		companyID = req.PartnerID
	}

	company, err := s.userRepo.FindByID(companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "Partner not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if company.Role != models.UserRolePartner {
		return nil, apperrors.NewNotFoundError("user", "Partner not found")
	}

	// Admins post on behalf of partners without a subscription check.
	if actorRole != models.UserRoleAdmin {
		active, err := s.subscriptions.HasActiveSubscription(companyID)
		if err != nil {
			return nil, err
		}
		if !active {
			return nil, apperrors.ErrSubscriptionRequired
		}
	}

	opportunity := &models.Opportunity{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        req.Type,
		Field:       req.Field,
		CompanyID:   companyID,
	}
	if err := s.opportunityRepo.Create(opportunity); err != nil {
		return nil, apperrors.InternalError(err)
	}

	opportunity.Company = company
	resp := dto.NewOpportunityResponse(opportunity)
	return &resp, nil
}

func (s *OpportunityServiceImpl) Update(actorID string, actorRole models.UserRole, id string, req *dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOpportunityNotFound) {
			return nil, apperrors.NewNotFoundError("opportunity", "Opportunity not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if actorRole != models.UserRoleAdmin {
		if opportunity.CompanyID != actorID {
			return nil, apperrors.ErrInsufficientPermissions
		}
		active, err := s.subscriptions.HasActiveSubscription(actorID)
		if err != nil {
			return nil, err
		}
		if !active {
			return nil, apperrors.ErrSubscriptionRequired
		}
	}

	if req.Title != nil {
		opportunity.Title = *req.Title
	}
	if req.Description != nil {
		opportunity.Description = *req.Description
	}
	if req.Location != nil {
		opportunity.Location = *req.Location
	}
	if req.Salary != nil {
		opportunity.Salary = *req.Salary
	}
	if req.Type != nil {
		opportunity.Type = *req.Type
	}
	if req.Field != nil {
		opportunity.Field = *req.Field
	}

	if err := s.opportunityRepo.Update(opportunity); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewOpportunityResponse(opportunity)
	return &resp, nil
}

// Delete is owner-or-admin. Owners may always take their own posting
// down, lapsed subscription or not.
func (s *OpportunityServiceImpl) Delete(actorID string, actorRole models.UserRole, id string) error {
	opportunity, err := s.opportunityRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOpportunityNotFound) {
			return apperrors.NewNotFoundError("opportunity", "Opportunity not found")
		}
		return apperrors.InternalError(err)
	}

	if actorRole != models.UserRoleAdmin && opportunity.CompanyID != actorID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.opportunityRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
