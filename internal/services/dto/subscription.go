package dto

// CreateSubscriptionResponse hands the frontend what it needs to confirm
// the payment with Stripe.js.
type CreateSubscriptionResponse struct {
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret"`
}

type VerifyPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntent" validate:"required"`
}

type VerifyPaymentResponse struct {
	Status string `json:"status"`
}

type CancelSubscriptionResponse struct {
	Status string `json:"status"`
}

type SubscriptionStatusResponse struct {
	HasActiveSubscription bool `json:"hasActiveSubscription"`
}
