package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository "record not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrGitHubExchangeFailed = New(
	CodeUnauthorized,
	"auth",
	"GitHub authorization failed",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Subscriptions & payments ---

var ErrSubscriptionRequired = New(
	CodeForbidden,
	"subscription",
	"Active subscription required",
	http.StatusForbidden,
)

var ErrNoSubscription = New(
	CodeInvalidOperation,
	"subscription",
	"No active subscription found",
	http.StatusBadRequest,
)

var ErrPaymentVerificationFailed = New(
	CodeInvalidOperation,
	"payment",
	"Payment verification failed",
	http.StatusBadRequest,
)

var ErrWebhookSignature = New(
	CodeValidationFailed,
	"payment",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)

// --- Opportunities ---

var ErrOpportunityUnavailable = New(
	CodeNotFound,
	"opportunity",
	"This opportunity is not currently available",
	http.StatusNotFound,
)

// --- Applications ---

var ErrDuplicateApplication = New(
	CodeConflict,
	"application",
	"You have already applied for this opportunity",
	http.StatusConflict,
)

var ErrOpportunityNotOpen = New(
	CodeInvalidOperation,
	"application",
	"This opportunity is not currently available",
	http.StatusBadRequest,
)

// --- Users & CV ---

var ErrCVTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"CV file size exceeds 10MB limit",
	http.StatusBadRequest,
)

var ErrCVNotFound = New(
	CodeNotFound,
	"user",
	"CV not found",
	http.StatusNotFound,
)
