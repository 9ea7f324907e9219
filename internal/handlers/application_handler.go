package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugovasko/intern-com-backend/internal/middleware"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/services"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	applications := rg.Group("/applications", middleware.AuthMiddleware())
	{
		applications.POST("",
			middleware.RequireRoles(models.UserRoleCandidate),
			h.Create)
		applications.GET("",
			middleware.RequireRoles(models.UserRoleAdmin),
			h.FindAll)
		applications.GET("/my-applications",
			middleware.RequireRoles(models.UserRoleCandidate),
			h.MyApplications)
		applications.GET("/company-applications",
			middleware.RequireRoles(models.UserRolePartner),
			h.CompanyApplications)
		applications.GET("/:id", h.FindOne)
		applications.PATCH("/:id",
			middleware.RequireRoles(models.UserRolePartner, models.UserRoleAdmin),
			h.Update)
		applications.DELETE("/:id",
			middleware.RequireRoles(models.UserRoleAdmin),
			h.Delete)
	}
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) FindAll(c *gin.Context) {
	applications, err := h.applicationService.FindAll()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.FindByCandidate(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) CompanyApplications(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.FindByCompany(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) FindOne(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	application, err := h.applicationService.FindOne(userID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req dto.UpdateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Update(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.applicationService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}
