package services

import (
	"github.com/hugovasko/intern-com-backend/internal/billing"
	"github.com/hugovasko/intern-com-backend/internal/email"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
)

// ServiceContainer wires every service once at startup.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Opportunity  OpportunityService
	Application  ApplicationService
	Subscription SubscriptionService
}

func NewServiceContainer(
	userRepo repositories.UserRepository,
	opportunityRepo repositories.OpportunityRepository,
	applicationRepo repositories.ApplicationRepository,
	provider billing.Provider,
	githubc GitHubAuthClient,
	sender *email.Sender,
) *ServiceContainer {
	subscriptions := NewSubscriptionService(userRepo, provider)
	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, githubc, sender),
		User:         NewUserService(userRepo, applicationRepo),
		Opportunity:  NewOpportunityService(opportunityRepo, userRepo, subscriptions),
		Application:  NewApplicationService(applicationRepo, opportunityRepo, subscriptions),
		Subscription: subscriptions,
	}
}
