package services

import (
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

type ApplicationService interface {
	Create(candidateID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	FindAll() ([]dto.ApplicationResponse, error)
	FindByCandidate(candidateID string) ([]dto.ApplicationResponse, error)
	FindByCompany(companyID string) ([]dto.ApplicationResponse, error)
	FindOne(actorID string, actorRole models.UserRole, id string) (*dto.ApplicationResponse, error)
	Update(actorID string, actorRole models.UserRole, id string, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error)
	Delete(id string) error
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	opportunityRepo repositories.OpportunityRepository
	subscriptions   SubscriptionService
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	opportunityRepo repositories.OpportunityRepository,
	subscriptions SubscriptionService,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		opportunityRepo: opportunityRepo,
		subscriptions:   subscriptions,
	}
}

func (s *ApplicationServiceImpl) Create(candidateID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(req.OpportunityID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOpportunityNotFound) {
			return nil, apperrors.NewNotFoundError("opportunity", "Opportunity not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Applying is gated on the posting company, not the candidate.
	active, err := s.subscriptions.HasActiveSubscription(opportunity.CompanyID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.ErrOpportunityNotOpen
	}

	application := &models.Application{
		CandidateID:   candidateID,
		OpportunityID: req.OpportunityID,
		Status:        models.ApplicationStatusPending,
		Message:       req.Message,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, apperrors.InternalError(err)
	}

	application.Opportunity = opportunity
	resp := dto.NewApplicationResponse(application)
	return &resp, nil
}

func (s *ApplicationServiceImpl) FindAll() ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewApplicationResponses(applications), nil
}

func (s *ApplicationServiceImpl) FindByCandidate(candidateID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindByCandidate(candidateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewApplicationResponses(applications), nil
}

// FindByCompany lists the partner's inbox; it is gated on the partner's
// own subscription.
func (s *ApplicationServiceImpl) FindByCompany(companyID string) ([]dto.ApplicationResponse, error) {
	active, err := s.subscriptions.HasActiveSubscription(companyID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.ErrSubscriptionRequired
	}

	applications, err := s.applicationRepo.FindByCompany(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewApplicationResponses(applications), nil
}

func (s *ApplicationServiceImpl) FindOne(actorID string, actorRole models.UserRole, id string) (*dto.ApplicationResponse, error) {
	application, err := s.findApplication(id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(actorID, actorRole, application) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	resp := dto.NewApplicationResponse(application)
	return &resp, nil
}

func (s *ApplicationServiceImpl) Update(actorID string, actorRole models.UserRole, id string, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	application, err := s.findApplication(id)
	if err != nil {
		return nil, err
	}

	// Only the reviewing partner or an admin moves an application along.
	isOwner := application.Opportunity != nil && application.Opportunity.CompanyID == actorID
	if actorRole != models.UserRoleAdmin && !(actorRole == models.UserRolePartner && isOwner) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Status != nil {
		status := models.ApplicationStatus(*req.Status)
		if !status.Valid() {
			return nil, apperrors.NewBadRequestError("Invalid application status")
		}
		application.Status = status
	}
	if req.Note != nil {
		application.Note = *req.Note
	}

	if err := s.applicationRepo.Update(application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewApplicationResponse(application)
	return &resp, nil
}

func (s *ApplicationServiceImpl) Delete(id string) error {
	if err := s.applicationRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.NewNotFoundError("application", "Application not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ApplicationServiceImpl) findApplication(id string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("application", "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

func (s *ApplicationServiceImpl) canAccess(actorID string, actorRole models.UserRole, application *models.Application) bool {
	if actorRole == models.UserRoleAdmin {
		return true
	}
	if application.CandidateID == actorID {
		return true
	}
	return application.Opportunity != nil && application.Opportunity.CompanyID == actorID
}
