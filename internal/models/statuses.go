package models

type UserRole string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRolePartner   UserRole = "partner"
	UserRoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCandidate, UserRolePartner, UserRoleAdmin:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Subscription status values mirror Stripe's subscription status
// vocabulary. The local column is a cache; Stripe is the source of truth.
const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusIncomplete = "incomplete"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusPastDue    = "past_due"
)
