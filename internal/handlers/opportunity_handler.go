package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugovasko/intern-com-backend/internal/middleware"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/services"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
)

type OpportunityHandler struct {
	*BaseHandler
	opportunityService services.OpportunityService
}

func NewOpportunityHandler(base *BaseHandler, opportunityService services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{
		BaseHandler:        base,
		opportunityService: opportunityService,
	}
}

func (h *OpportunityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	opportunities := rg.Group("/opportunities")
	{
		opportunities.GET("", h.FindAll)
		opportunities.GET("/my-opportunities",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(models.UserRolePartner),
			h.MyOpportunities)
		opportunities.GET("/:id", h.FindOne)

		authed := opportunities.Group("", middleware.AuthMiddleware())
		{
			authed.POST("",
				middleware.RequireRoles(models.UserRolePartner, models.UserRoleAdmin),
				h.Create)
			authed.PATCH("/:id",
				middleware.RequireRoles(models.UserRolePartner, models.UserRoleAdmin),
				h.Update)
			authed.DELETE("/:id",
				middleware.RequireRoles(models.UserRolePartner, models.UserRoleAdmin),
				h.Delete)
		}
	}
}

func (h *OpportunityHandler) FindAll(c *gin.Context) {
	opportunities, err := h.opportunityService.FindAll(c.Query("field"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, opportunities)
}

func (h *OpportunityHandler) FindOne(c *gin.Context) {
	opportunity, err := h.opportunityService.FindOne(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, opportunity)
}

func (h *OpportunityHandler) MyOpportunities(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	opportunities, err := h.opportunityService.FindByCompany(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, opportunities)
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req dto.CreateOpportunityRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	opportunity, err := h.opportunityService.Create(userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, opportunity)
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req dto.UpdateOpportunityRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	opportunity, err := h.opportunityService.Update(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, opportunity)
}

func (h *OpportunityHandler) Delete(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := h.opportunityService.Delete(userID, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Opportunity deleted"})
}
