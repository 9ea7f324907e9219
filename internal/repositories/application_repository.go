package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hugovasko/intern-com-backend/internal/models"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this opportunity")
)

type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByID(id string) (*models.Application, error)
	FindAll() ([]models.Application, error)
	FindByCandidate(candidateID string) ([]models.Application, error)
	FindByCompany(companyID string) ([]models.Application, error)
	// ExistsForCompanyByCandidate reports whether the candidate has
	// applied to any opportunity owned by the company.
	ExistsForCompanyByCandidate(candidateID, companyID string) (bool, error)
	Update(application *models.Application) error
	Delete(id string) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(application *models.Application) error {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("candidate_id = ? AND opportunity_id = ?", application.CandidateID, application.OpportunityID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateApplication
	}

	// The unique index still backs this up under concurrent inserts.
	if err := r.db.Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var application models.Application
	err := r.db.
		Preload("Candidate").
		Preload("Opportunity").
		Preload("Opportunity.Company").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindAll() ([]models.Application, error) {
	var applications []models.Application
	err := r.db.
		Preload("Candidate").
		Preload("Opportunity").
		Preload("Opportunity.Company").
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByCandidate(candidateID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.
		Preload("Opportunity").
		Preload("Opportunity.Company").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByCompany(companyID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.
		Joins("JOIN opportunities ON opportunities.id = applications.opportunity_id").
		Where("opportunities.company_id = ?", companyID).
		Preload("Candidate").
		Preload("Opportunity").
		Order("applications.created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) ExistsForCompanyByCandidate(candidateID, companyID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Joins("JOIN opportunities ON opportunities.id = applications.opportunity_id").
		Where("applications.candidate_id = ? AND opportunities.company_id = ?", candidateID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) Update(application *models.Application) error {
	result := r.db.Save(application)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
