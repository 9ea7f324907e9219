package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugovasko/intern-com-backend/internal/middleware"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/services"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		// The route name carries a historical typo the frontend
		// depends on.
		users.GET("/all-partnes-coordinates", h.PartnersCoordinates)

		authed := users.Group("", middleware.AuthMiddleware())
		{
			authed.GET("", middleware.RequireRoles(models.UserRoleAdmin), h.FindAll)
			authed.GET("/:id", h.FindOne)
			authed.PATCH("/:id", h.Update)
			authed.PATCH("/:id/role", middleware.RequireRoles(models.UserRoleAdmin), h.UpdateRole)
			authed.DELETE("/:id", middleware.RequireRoles(models.UserRoleAdmin), h.Delete)
			authed.POST("/:id/cv", h.UploadCV)
			authed.GET("/:id/cv", h.DownloadCV)
			authed.DELETE("/:id/cv", h.RemoveCV)
		}
	}
}

func (h *UserHandler) FindAll(c *gin.Context) {
	users, err := h.userService.FindAll(c.Query("role"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) FindOne(c *gin.Context) {
	actorID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	if targetID != actorID && !middleware.IsAdmin(c) {
		h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	user, err := h.userService.FindOne(targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	actorID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(actorID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateRole(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) PartnersCoordinates(c *gin.Context) {
	partners, err := h.userService.PartnersCoordinates()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, partners)
}

func (h *UserHandler) UploadCV(c *gin.Context) {
	actorID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	// Upload mirrors profile update access: self or admin.
	if targetID != actorID && !middleware.IsAdmin(c) {
		h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	var req dto.UploadCVRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UploadCV(targetID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "CV uploaded"})
}

func (h *UserHandler) DownloadCV(c *gin.Context) {
	actorID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	file, err := h.userService.DownloadCV(actorID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.MimeType, file.Data)
}

func (h *UserHandler) RemoveCV(c *gin.Context) {
	actorID, ok := h.RequireUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := h.userService.RemoveCV(actorID, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "CV removed"})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
