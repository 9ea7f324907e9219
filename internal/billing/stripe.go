package billing

import (
	"encoding/json"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeProvider implements Provider on top of the Stripe SDK.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	priceID       string
}

func NewStripeProvider(secretKey, webhookSecret, priceID string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
		priceID:       priceID,
	}
}

func (p *StripeProvider) CreateCustomer(email, userID string) (string, error) {
	params := &stripe.CustomerParams{}
	if email != "" {
		params.Email = stripe.String(email)
	}
	params.AddMetadata("userId", userID)

	customer, err := p.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create customer: %w", err)
	}
	return customer.ID, nil
}

func (p *StripeProvider) CreateSubscription(customerID, userID string) (*CheckoutIntent, error) {
	// Abandoned checkouts leave incomplete subscriptions behind; cancel
	// them before creating a new one.
	listParams := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusIncomplete)),
	}
	iter := p.api.Subscriptions.List(listParams)
	for iter.Next() {
		if _, err := p.api.Subscriptions.Cancel(iter.Subscription().ID, nil); err != nil {
			return nil, fmt.Errorf("stripe: cancel incomplete subscription: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe: list incomplete subscriptions: %w", err)
	}

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(p.priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	params.AddMetadata("userId", userID)
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := p.api.Subscriptions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create subscription: %w", err)
	}

	intent := &CheckoutIntent{
		SubscriptionID: sub.ID,
		Status:         string(sub.Status),
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		intent.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return intent, nil
}

func (p *StripeProvider) CancelSubscription(subscriptionID string) (*Subscription, error) {
	sub, err := p.api.Subscriptions.Cancel(subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("stripe: cancel subscription: %w", err)
	}
	return fromStripeSubscription(sub), nil
}

func (p *StripeProvider) RetrievePaymentIntent(id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.AddExpand("customer")
	params.AddExpand("invoice.subscription")

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve payment intent: %w", err)
	}

	result := &PaymentIntent{
		ID:     pi.ID,
		Status: string(pi.Status),
	}
	if pi.Customer != nil {
		result.CustomerID = pi.Customer.ID
	}
	if pi.Invoice != nil && pi.Invoice.Subscription != nil {
		result.Subscription = fromStripeSubscription(pi.Invoice.Subscription)
	}
	return result, nil
}

func (p *StripeProvider) ConstructEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe: webhook verification: %w", err)
	}

	result := &Event{
		ID:   event.ID,
		Type: EventType(event.Type),
	}

	switch result.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("stripe: decode subscription event: %w", err)
		}
		result.Subscription = fromStripeSubscription(&sub)
	}
	return result, nil
}

func fromStripeSubscription(sub *stripe.Subscription) *Subscription {
	result := &Subscription{
		ID:     sub.ID,
		Status: string(sub.Status),
		UserID: sub.Metadata["userId"],
	}
	if sub.Customer != nil {
		result.CustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		result.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0)
	}
	return result
}
