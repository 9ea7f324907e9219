package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hugovasko/intern-com-backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// publicUserColumns is the allow-list for admin listings. CV bytes and
// the password hash never leave the repository through FindAll.
var publicUserColumns = []string{
	"id", "created_at", "first_name", "last_name", "email", "github_id",
	"role", "phone_number", "company_name", "company_coordinates",
	"cv_file_name", "cv_mime_type", "cv_uploaded_at",
	"subscription_status", "subscription_end_date",
}

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByGithubID(githubID string) (*models.User, error)
	FindByStripeCustomerID(customerID string) (*models.User, error)
	FindAll(role models.UserRole) ([]models.User, error)
	FindPartnersWithCoordinates() ([]models.User, error)
	Update(user *models.User) error
	UpdateRole(userID string, role models.UserRole) error
	UpdateCV(userID string, cv []byte, fileName, mimeType string, uploadedAt *time.Time) error
	UpdateSubscriptionByCustomer(customerID, status string, endDate *time.Time) error
	DeleteCascade(userID string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if user.Email != nil {
		var existing models.User
		if err := r.db.Where("email = ?", *user.Email).First(&existing).Error; err == nil {
			return ErrUserAlreadyExists
		}
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByGithubID(githubID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "github_id = ?", githubID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByStripeCustomerID(customerID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "stripe_customer_id = ?", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAll(role models.UserRole) ([]models.User, error) {
	var users []models.User
	query := r.db.Select(publicUserColumns).Order("created_at DESC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindPartnersWithCoordinates() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Select("id", "company_name", "company_coordinates", "first_name", "last_name", "email", "phone_number").
		Where("role = ? AND company_coordinates <> ''", models.UserRolePartner).
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateRole(userID string, role models.UserRole) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateCV sets or clears the CV columns in one statement so the blob and
// its metadata never disagree.
func (r *UserRepositoryImpl) UpdateCV(userID string, cv []byte, fileName, mimeType string, uploadedAt *time.Time) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"cv":             cv,
		"cv_file_name":   fileName,
		"cv_mime_type":   mimeType,
		"cv_uploaded_at": uploadedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateSubscriptionByCustomer(customerID, status string, endDate *time.Time) error {
	result := r.db.Model(&models.User{}).
		Where("stripe_customer_id = ?", customerID).
		Updates(map[string]interface{}{
			"subscription_status":   status,
			"subscription_end_date": endDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteCascade removes a user and everything hanging off it in one
// transaction. Partners lose applications to their opportunities first,
// then the opportunities; candidates lose their applications.
func (r *UserRepositoryImpl) DeleteCascade(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		switch user.Role {
		case models.UserRolePartner:
			sub := tx.Model(&models.Opportunity{}).Select("id").Where("company_id = ?", userID)
			if err := tx.Where("opportunity_id IN (?)", sub).Delete(&models.Application{}).Error; err != nil {
				return err
			}
			if err := tx.Where("company_id = ?", userID).Delete(&models.Opportunity{}).Error; err != nil {
				return err
			}
		case models.UserRoleCandidate:
			if err := tx.Where("candidate_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}
