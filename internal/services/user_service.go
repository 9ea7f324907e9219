package services

import (
	"encoding/base64"
	"time"

	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

// MaxCVSize caps uploaded CV blobs at 10 MiB.
const MaxCVSize = 10 * 1024 * 1024

type UserService interface {
	FindAll(role string) ([]dto.UserResponse, error)
	FindOne(id string) (*dto.UserResponse, error)
	Update(actorID string, actorRole models.UserRole, targetID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	UpdateRole(targetID string, req *dto.UpdateRoleRequest) (*dto.UserResponse, error)
	PartnersCoordinates() ([]dto.PartnerCoordinatesResponse, error)
	UploadCV(userID string, req *dto.UploadCVRequest) error
	DownloadCV(actorID string, actorRole models.UserRole, targetID string) (*dto.CVFile, error)
	RemoveCV(actorID string, actorRole models.UserRole, targetID string) error
	Delete(targetID string) error
}

type UserServiceImpl struct {
	userRepo        repositories.UserRepository
	applicationRepo repositories.ApplicationRepository
}

func NewUserService(userRepo repositories.UserRepository, applicationRepo repositories.ApplicationRepository) UserService {
	return &UserServiceImpl{
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
	}
}

func (s *UserServiceImpl) FindAll(role string) ([]dto.UserResponse, error) {
	userRole := models.UserRole(role)
	if role != "" && !userRole.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid role filter")
	}

	users, err := s.userRepo.FindAll(userRole)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponses(users), nil
}

func (s *UserServiceImpl) FindOne(id string) (*dto.UserResponse, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) Update(actorID string, actorRole models.UserRole, targetID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actorRole != models.UserRoleAdmin && actorID != targetID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	user, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		emailAddr := *req.Email
		user.Email = &emailAddr
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.CompanyCoordinates != nil {
		user.CompanyCoordinates = *req.CompanyCoordinates
	}

	if err := s.userRepo.Update(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) UpdateRole(targetID string, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidUserRole
	}

	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.FindOne(targetID)
}

func (s *UserServiceImpl) PartnersCoordinates() ([]dto.PartnerCoordinatesResponse, error) {
	partners, err := s.userRepo.FindPartnersWithCoordinates()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.PartnerCoordinatesResponse, 0, len(partners))
	for i := range partners {
		p := &partners[i]
		out = append(out, dto.PartnerCoordinatesResponse{
			ID:                 p.ID,
			CompanyName:        p.CompanyName,
			CompanyCoordinates: p.CompanyCoordinates,
			FirstName:          p.FirstName,
			LastName:           p.LastName,
			Email:              p.Email,
			PhoneNumber:        p.PhoneNumber,
		})
	}
	return out, nil
}

func (s *UserServiceImpl) UploadCV(userID string, req *dto.UploadCVRequest) error {
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return apperrors.NewBadRequestError("CV data is not valid base64")
	}
	if len(data) > MaxCVSize {
		return apperrors.ErrCVTooLarge
	}

	now := time.Now()
	if err := s.userRepo.UpdateCV(userID, data, req.FileName, req.MimeType, &now); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// DownloadCV is open to the candidate, admins, and partners the
// candidate has applied to.
func (s *UserServiceImpl) DownloadCV(actorID string, actorRole models.UserRole, targetID string) (*dto.CVFile, error) {
	user, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}

	allowed := actorID == targetID || actorRole == models.UserRoleAdmin
	if !allowed && actorRole == models.UserRolePartner {
		applied, err := s.applicationRepo.ExistsForCompanyByCandidate(targetID, actorID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		allowed = applied
	}
	if !allowed {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if !user.HasCV() {
		return nil, apperrors.ErrCVNotFound
	}

	return &dto.CVFile{
		FileName: user.CVFileName,
		MimeType: user.CVMimeType,
		Data:     user.CV,
	}, nil
}

func (s *UserServiceImpl) RemoveCV(actorID string, actorRole models.UserRole, targetID string) error {
	if actorRole != models.UserRoleAdmin && actorID != targetID {
		return apperrors.ErrInsufficientPermissions
	}

	user, err := s.findUser(targetID)
	if err != nil {
		return err
	}
	if !user.HasCV() {
		return apperrors.ErrCVNotFound
	}

	if err := s.userRepo.UpdateCV(targetID, nil, "", "", nil); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Delete removes the user and its dependents in one transaction.
func (s *UserServiceImpl) Delete(targetID string) error {
	if err := s.userRepo.DeleteCascade(targetID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) findUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
