package services

import (
	"strconv"

	"github.com/hugovasko/intern-com-backend/internal/auth"
	"github.com/hugovasko/intern-com-backend/internal/email"
	"github.com/hugovasko/intern-com-backend/internal/github"
	"github.com/hugovasko/intern-com-backend/internal/logger"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

// GitHubAuthClient is the slice of the GitHub client the auth flow uses.
type GitHubAuthClient interface {
	ExchangeCode(code string) (string, error)
	FetchAuthenticatedUser(accessToken string) (*github.AuthenticatedUser, error)
}

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	GitHubLogin(code string) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	githubc  GitHubAuthClient
	sender   *email.Sender
}

func NewAuthService(userRepo repositories.UserRepository, githubc GitHubAuthClient, sender *email.Sender) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		githubc:  githubc,
		sender:   sender,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleCandidate
	}
	if role != models.UserRoleCandidate && role != models.UserRolePartner {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	emailAddr := req.Email
	user := &models.User{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              &emailAddr,
		PasswordHash:       hash,
		Role:               role,
		PhoneNumber:        req.PhoneNumber,
		CompanyName:        req.CompanyName,
		CompanyCoordinates: req.CompanyCoordinates,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcome(user)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	// OAuth-only accounts have no password hash and cannot log in here.
	if user.PasswordHash == "" || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthServiceImpl) GitHubLogin(code string) (*dto.AuthResponse, error) {
	accessToken, err := s.githubc.ExchangeCode(code)
	if err != nil {
		logger.Warn("github code exchange failed", "error", err)
		return nil, apperrors.ErrGitHubExchangeFailed
	}

	ghUser, err := s.githubc.FetchAuthenticatedUser(accessToken)
	if err != nil {
		logger.Warn("github user fetch failed", "error", err)
		return nil, apperrors.ErrGitHubExchangeFailed
	}

	githubID := strconv.FormatInt(ghUser.ID, 10)
	user, err := s.userRepo.FindByGithubID(githubID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		user, err = s.registerGitHubUser(ghUser, githubID)
		if err != nil {
			return nil, err
		}
	}

	return s.issueToken(user)
}

func (s *AuthServiceImpl) registerGitHubUser(ghUser *github.AuthenticatedUser, githubID string) (*models.User, error) {
	firstName := ghUser.Name
	if firstName == "" {
		firstName = ghUser.Login
	}
	user := &models.User{
		FirstName: firstName,
		GithubID:  &githubID,
		Role:      models.UserRoleCandidate,
	}
	if ghUser.Email != "" {
		emailAddr := ghUser.Email
		user.Email = &emailAddr
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcome(user)
	return user, nil
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	}, nil
}

// sendWelcome fires the welcome mail in the background. Registration
// never fails because of SMTP.
func (s *AuthServiceImpl) sendWelcome(user *models.User) {
	if s.sender == nil || user.Email == nil {
		return
	}
	to := *user.Email
	firstName := user.FirstName
	go func() {
		if err := s.sender.SendWelcome(to, firstName); err != nil {
			logger.Warn("welcome email failed", "error", err)
		}
	}()
}
