package services

import (
	"time"

	"github.com/hugovasko/intern-com-backend/internal/billing"
	"github.com/hugovasko/intern-com-backend/internal/logger"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

// SubscriptionService owns every mutation of the cached subscription
// columns on users. Two channels feed it: signed webhooks and the
// frontend's verify-payment call. Both overwrite, so replays are safe.
type SubscriptionService interface {
	CreateSubscription(userID string) (*dto.CreateSubscriptionResponse, error)
	CancelSubscription(userID string) (*dto.CancelSubscriptionResponse, error)
	VerifyPayment(paymentIntentID string) (*dto.VerifyPaymentResponse, error)
	HandleWebhook(payload []byte, signature string) error
	HasActiveSubscription(userID string) (bool, error)
}

type SubscriptionServiceImpl struct {
	userRepo repositories.UserRepository
	provider billing.Provider
}

func NewSubscriptionService(userRepo repositories.UserRepository, provider billing.Provider) SubscriptionService {
	return &SubscriptionServiceImpl{
		userRepo: userRepo,
		provider: provider,
	}
}

func (s *SubscriptionServiceImpl) CreateSubscription(userID string) (*dto.CreateSubscriptionResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewBadRequestError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// A customer is provisioned on first checkout and reused after that.
	if user.StripeCustomerID == "" {
		emailAddr := ""
		if user.Email != nil {
			emailAddr = *user.Email
		}
		customerID, err := s.provider.CreateCustomer(emailAddr, user.ID)
		if err != nil {
			return nil, apperrors.UpstreamError(err, "payment", "Could not start checkout")
		}
		user.StripeCustomerID = customerID
		if err := s.userRepo.Update(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	intent, err := s.provider.CreateSubscription(user.StripeCustomerID, user.ID)
	if err != nil {
		return nil, apperrors.UpstreamError(err, "payment", "Could not start checkout")
	}

	// Persist immediately so verify-payment and the webhook both find
	// the pending subscription on the row.
	user.SubscriptionID = intent.SubscriptionID
	user.SubscriptionStatus = intent.Status
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CreateSubscriptionResponse{
		SubscriptionID: intent.SubscriptionID,
		ClientSecret:   intent.ClientSecret,
	}, nil
}

func (s *SubscriptionServiceImpl) CancelSubscription(userID string) (*dto.CancelSubscriptionResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewBadRequestError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if user.SubscriptionID == "" {
		return nil, apperrors.ErrNoSubscription
	}

	sub, err := s.provider.CancelSubscription(user.SubscriptionID)
	if err != nil {
		return nil, apperrors.UpstreamError(err, "payment", "Could not cancel subscription")
	}

	user.SubscriptionStatus = sub.Status
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CancelSubscriptionResponse{Status: sub.Status}, nil
}

// VerifyPayment reconciles a completed checkout without waiting for the
// webhook. The user is resolved by subscription metadata first, then by
// customer id.
func (s *SubscriptionServiceImpl) VerifyPayment(paymentIntentID string) (*dto.VerifyPaymentResponse, error) {
	intent, err := s.provider.RetrievePaymentIntent(paymentIntentID)
	if err != nil {
		return nil, apperrors.UpstreamError(err, "payment", "Could not verify payment")
	}

	if intent.Status != billing.PaymentIntentStatusSucceeded {
		return nil, apperrors.ErrPaymentVerificationFailed
	}
	if intent.Subscription == nil {
		return nil, apperrors.ErrPaymentVerificationFailed
	}

	user, err := s.resolveUser(intent)
	if err != nil {
		return nil, err
	}

	user.SubscriptionStatus = models.SubscriptionStatusActive
	user.SubscriptionID = intent.Subscription.ID
	if !intent.Subscription.CurrentPeriodEnd.IsZero() {
		end := intent.Subscription.CurrentPeriodEnd
		user.SubscriptionEndDate = &end
	}
	if user.StripeCustomerID == "" {
		user.StripeCustomerID = intent.CustomerID
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.VerifyPaymentResponse{Status: models.SubscriptionStatusActive}, nil
}

func (s *SubscriptionServiceImpl) resolveUser(intent *billing.PaymentIntent) (*models.User, error) {
	if intent.Subscription.UserID != "" {
		user, err := s.userRepo.FindByID(intent.Subscription.UserID)
		if err == nil {
			return user, nil
		}
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	if intent.CustomerID != "" {
		user, err := s.userRepo.FindByStripeCustomerID(intent.CustomerID)
		if err == nil {
			return user, nil
		}
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	return nil, apperrors.NewNotFoundError("payment", "No user matches this payment")
}

// HandleWebhook applies a provider event to the local cache. Events for
// customers this database does not know are dropped.
func (s *SubscriptionServiceImpl) HandleWebhook(payload []byte, signature string) error {
	event, err := s.provider.ConstructEvent(payload, signature)
	if err != nil {
		logger.Warn("webhook signature rejected", "error", err)
		return apperrors.ErrWebhookSignature
	}

	if event.Subscription == nil {
		logger.Debug("webhook event ignored", "type", string(event.Type), "event_id", event.ID)
		return nil
	}

	sub := event.Subscription
	var endDate *time.Time
	if !sub.CurrentPeriodEnd.IsZero() {
		end := sub.CurrentPeriodEnd
		endDate = &end
	}

	err = s.userRepo.UpdateSubscriptionByCustomer(sub.CustomerID, sub.Status, endDate)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.Debug("webhook for unknown customer dropped",
				"customer_id", sub.CustomerID, "event_id", event.ID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	logger.Info("subscription state updated from webhook",
		"type", string(event.Type), "status", sub.Status)
	return nil
}

func (s *SubscriptionServiceImpl) HasActiveSubscription(userID string) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	return user.SubscriptionStatus == models.SubscriptionStatusActive, nil
}
