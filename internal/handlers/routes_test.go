package handlers

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hugovasko/intern-com-backend/internal/validator"
)

// RegisterRoutes never touches the services, so nil handlers are enough
// to inspect the route table.
func registeredRoutes() map[string]bool {
	gin.SetMode(gin.TestMode)
	base := NewBaseHandler(validator.New())

	r := gin.New()
	root := r.Group("")
	NewAuthHandler(base, nil).RegisterRoutes(root)
	NewUserHandler(base, nil).RegisterRoutes(root)
	NewOpportunityHandler(base, nil).RegisterRoutes(root)
	NewApplicationHandler(base, nil).RegisterRoutes(root)
	NewSubscriptionHandler(base, nil).RegisterRoutes(root)
	NewGitHubHandler(base, nil).RegisterRoutes(root)

	routes := make(map[string]bool)
	for _, info := range r.Routes() {
		routes[fmt.Sprintf("%s %s", info.Method, info.Path)] = true
	}
	return routes
}

// The deployed frontend calls these paths verbatim; renaming any of them
// is a breaking change.
func TestRouteTable_FrontendContract(t *testing.T) {
	routes := registeredRoutes()

	expected := []string{
		"POST /auth/register",
		"POST /auth/login",
		"POST /auth/github/callback",

		"GET /opportunities",
		"GET /opportunities/my-opportunities",
		"GET /opportunities/:id",
		"POST /opportunities",
		"PATCH /opportunities/:id",
		"DELETE /opportunities/:id",

		"POST /applications",
		"GET /applications",
		"GET /applications/my-applications",
		"GET /applications/company-applications",
		"GET /applications/:id",
		"PATCH /applications/:id",
		"DELETE /applications/:id",

		"GET /users",
		"GET /users/all-partnes-coordinates",
		"GET /users/:id",
		"PATCH /users/:id",
		"PATCH /users/:id/role",
		"DELETE /users/:id",
		"POST /users/:id/cv",
		"GET /users/:id/cv",
		"DELETE /users/:id/cv",

		"POST /subscriptions",
		"DELETE /subscriptions",
		"POST /subscriptions/verify",
		"POST /subscriptions/webhook",
		"GET /subscriptions/status",

		"GET /github/user/:username",
		"GET /github/user/:username/repos",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "route missing: %s", route)
	}
}
