// Package billing wraps the payment provider behind the narrow interface
// the subscription service needs. Nothing outside this package imports
// the Stripe SDK.
package billing

import "time"

type EventType string

const (
	EventSubscriptionCreated EventType = "customer.subscription.created"
	EventSubscriptionUpdated EventType = "customer.subscription.updated"
	EventSubscriptionDeleted EventType = "customer.subscription.deleted"
)

const PaymentIntentStatusSucceeded = "succeeded"

// Subscription is the provider-side subscription state the service
// mirrors into the users table.
type Subscription struct {
	ID               string
	Status           string
	CustomerID       string
	CurrentPeriodEnd time.Time
	// UserID is the user id the subscription was created with, taken
	// from provider metadata. Empty when the provider has none.
	UserID string
}

// CheckoutIntent is returned from CreateSubscription so the frontend can
// confirm the payment out-of-band.
type CheckoutIntent struct {
	SubscriptionID string
	Status         string
	ClientSecret   string
}

type PaymentIntent struct {
	ID         string
	Status     string
	CustomerID string
	// Subscription is resolved through the intent's invoice. Nil when
	// the intent is not attached to a subscription invoice.
	Subscription *Subscription
}

// Event is a signature-verified webhook event. Subscription is nil for
// event types the system does not handle.
type Event struct {
	ID           string
	Type         EventType
	Subscription *Subscription
}

// Provider is the set of billing operations the subscription service
// consumes.
type Provider interface {
	// CreateCustomer provisions a provider customer tagged with the
	// local user id and returns the customer id.
	CreateCustomer(email, userID string) (string, error)

	// CreateSubscription cancels any stale incomplete subscriptions for
	// the customer, then creates a new one in payment-required mode.
	CreateSubscription(customerID, userID string) (*CheckoutIntent, error)

	CancelSubscription(subscriptionID string) (*Subscription, error)

	RetrievePaymentIntent(id string) (*PaymentIntent, error)

	// ConstructEvent verifies the webhook signature against the shared
	// secret and parses the payload. Returns an error on any signature
	// mismatch; unverified payloads are never parsed.
	ConstructEvent(payload []byte, signature string) (*Event, error)
}
