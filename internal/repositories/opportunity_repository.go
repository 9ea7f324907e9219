package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hugovasko/intern-com-backend/internal/models"
)

var ErrOpportunityNotFound = errors.New("opportunity not found")

type OpportunityRepository interface {
	Create(opportunity *models.Opportunity) error
	FindByID(id string) (*models.Opportunity, error)
	// FindAllActive returns opportunities whose owning company currently
	// has an active subscription, optionally narrowed to one field.
	FindAllActive(field string) ([]models.Opportunity, error)
	FindByCompany(companyID string) ([]models.Opportunity, error)
	Update(opportunity *models.Opportunity) error
	Delete(id string) error
}

type OpportunityRepositoryImpl struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &OpportunityRepositoryImpl{db: db}
}

func (r *OpportunityRepositoryImpl) Create(opportunity *models.Opportunity) error {
	return r.db.Create(opportunity).Error
}

func (r *OpportunityRepositoryImpl) FindByID(id string) (*models.Opportunity, error) {
	var opportunity models.Opportunity
	err := r.db.Preload("Company").First(&opportunity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}
	return &opportunity, nil
}

func (r *OpportunityRepositoryImpl) FindAllActive(field string) ([]models.Opportunity, error) {
	var opportunities []models.Opportunity
	query := r.db.
		Joins("JOIN users ON users.id = opportunities.company_id").
		Where("users.subscription_status = ?", models.SubscriptionStatusActive).
		Preload("Company").
		Order("opportunities.created_at DESC")
	if field != "" {
		query = query.Where("opportunities.field = ?", field)
	}
	err := query.Find(&opportunities).Error
	return opportunities, err
}

func (r *OpportunityRepositoryImpl) FindByCompany(companyID string) ([]models.Opportunity, error) {
	var opportunities []models.Opportunity
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&opportunities).Error
	return opportunities, err
}

func (r *OpportunityRepositoryImpl) Update(opportunity *models.Opportunity) error {
	result := r.db.Save(opportunity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOpportunityNotFound
	}
	return nil
}

func (r *OpportunityRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("opportunity_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Opportunity{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOpportunityNotFound
		}
		return nil
	})
}
