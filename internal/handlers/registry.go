package handlers

import (
	"github.com/hugovasko/intern-com-backend/internal/github"
	"github.com/hugovasko/intern-com-backend/internal/services"
	"github.com/hugovasko/intern-com-backend/internal/validator"
)

// HandlerContainer groups every HTTP handler for route registration.
type HandlerContainer struct {
	Auth         *AuthHandler
	User         *UserHandler
	Opportunity  *OpportunityHandler
	Application  *ApplicationHandler
	Subscription *SubscriptionHandler
	GitHub       *GitHubHandler
}

func NewHandlerContainer(svcs *services.ServiceContainer, githubClient *github.Client) *HandlerContainer {
	base := NewBaseHandler(validator.New())
	return &HandlerContainer{
		Auth:         NewAuthHandler(base, svcs.Auth),
		User:         NewUserHandler(base, svcs.User),
		Opportunity:  NewOpportunityHandler(base, svcs.Opportunity),
		Application:  NewApplicationHandler(base, svcs.Application),
		Subscription: NewSubscriptionHandler(base, svcs.Subscription),
		GitHub:       NewGitHubHandler(base, githubClient),
	}
}
