package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugovasko/intern-com-backend/internal/logger"
	"github.com/hugovasko/intern-com-backend/internal/middleware"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/services"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subscriptions := rg.Group("/subscriptions")
	{
		// The webhook authenticates by signature, not by JWT.
		subscriptions.POST("/webhook", h.Webhook)

		authed := subscriptions.Group("",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(models.UserRolePartner))
		{
			authed.POST("", h.Create)
			authed.DELETE("", h.Cancel)
			authed.POST("/verify", h.VerifyPayment)
			authed.GET("/status", h.Status)
		}
	}
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.CreateSubscription(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.CancelSubscription(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.subscriptionService.VerifyPayment(req.PaymentIntentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook reads the raw body before any parsing; the signature covers
// the exact bytes Stripe sent.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to read webhook body", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Could not read request body"))
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.subscriptionService.HandleWebhook(payload, signature); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	active, err := h.subscriptionService.HasActiveSubscription(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubscriptionStatusResponse{HasActiveSubscription: active})
}
