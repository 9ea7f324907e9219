package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hugovasko/intern-com-backend/internal/handlers"
)

// RegisterRoutes mounts every handler group at the root. Paths are bare
// (no /api prefix) to match the deployed frontend.
func RegisterRoutes(router *gin.Engine, h *handlers.HandlerContainer) {
	root := router.Group("")

	h.Auth.RegisterRoutes(root)
	h.User.RegisterRoutes(root)
	h.Opportunity.RegisterRoutes(root)
	h.Application.RegisterRoutes(root)
	h.Subscription.RegisterRoutes(root)
	h.GitHub.RegisterRoutes(root)
}
