package errorx

import (
	"fmt"
	"net/http"
)

// APIError is the error type returned across handler and storage boundaries.
// MessageID keys the translated message; Message is the English fallback.
type APIError struct {
	Code      string `json:"code"`
	MessageID string `json:"-"`
	Message   string `json:"message"`
	Status    int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithMessage returns a copy of the error with a different fallback message.
// The code, status and message ID are preserved.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{
		Code:      e.Code,
		MessageID: e.MessageID,
		Message:   msg,
		Status:    e.Status,
	}
}

var (
	// Validation errors (E1xxx)
	ErrInvalidInput = &APIError{
		Code:      "E1001",
		MessageID: "error.invalid_input",
		Message:   "invalid input",
		Status:    http.StatusBadRequest,
	}
	ErrInvalidUsername = &APIError{
		Code:      "E1002",
		MessageID: "error.invalid_username",
		Message:   "username must be at least 3 characters and contain only letters, digits or underscores",
		Status:    http.StatusBadRequest,
	}
	ErrInvalidEmail = &APIError{
		Code:      "E1003",
		MessageID: "error.invalid_email_format",
		Message:   "invalid email address",
		Status:    http.StatusBadRequest,
	}
	ErrWeakPassword = &APIError{
		Code:      "E1004",
		MessageID: "error.weak_password",
		Message:   "password must be at least 6 characters",
		Status:    http.StatusBadRequest,
	}
	ErrInvalidOrderItems = &APIError{
		Code:      "E1005",
		MessageID: "error.invalid_order_items",
		Message:   "order must contain at least one item with a positive quantity",
		Status:    http.StatusBadRequest,
	}
	ErrUnsupportedImage = &APIError{
		Code:      "E1006",
		MessageID: "error.unsupported_image",
		Message:   "uploaded file must be an image under the size limit",
		Status:    http.StatusBadRequest,
	}

	// Authentication errors (E2xxx). Email-not-found and password-mismatch
	// are deliberately distinct; the split leaks account existence and is
	// kept because clients depend on the two messages.
	ErrEmailNotFound = &APIError{
		Code:      "E2001",
		MessageID: "error.email_not_found",
		Message:   "invalid email",
		Status:    http.StatusBadRequest,
	}
	ErrIncorrectPassword = &APIError{
		Code:      "E2002",
		MessageID: "error.incorrect_password",
		Message:   "incorrect password",
		Status:    http.StatusBadRequest,
	}
	ErrNoSession = &APIError{
		Code:      "E2003",
		MessageID: "error.no_session",
		Message:   "not logged in",
		Status:    http.StatusUnauthorized,
	}

	// Authorization errors (E3xxx)
	ErrForbidden = &APIError{
		Code:      "E3001",
		MessageID: "error.forbidden",
		Message:   "you do not have permission to modify this resource",
		Status:    http.StatusForbidden,
	}
	ErrAdminOnly = &APIError{
		Code:      "E3002",
		MessageID: "error.admin_only",
		Message:   "administrator access required",
		Status:    http.StatusForbidden,
	}

	// Not found errors (E4xxx)
	ErrNotFound = &APIError{
		Code:      "E4001",
		MessageID: "error.not_found",
		Message:   "resource not found",
		Status:    http.StatusNotFound,
	}
	ErrUserNotFound = &APIError{
		Code:      "E4002",
		MessageID: "error.user_not_found",
		Message:   "user no longer exists",
		Status:    http.StatusNotFound,
	}

	// Conflict errors (E4xx9)
	ErrDuplicateUser = &APIError{
		Code:      "E4091",
		MessageID: "error.duplicate_user",
		Message:   "username or email already registered",
		Status:    http.StatusConflict,
	}
	ErrDeliveryExists = &APIError{
		Code:      "E4092",
		MessageID: "error.delivery_exists",
		Message:   "a delivery already exists for this order",
		Status:    http.StatusConflict,
	}

	// Internal errors (E5xxx)
	ErrInternal = &APIError{
		Code:      "E5001",
		MessageID: "error.internal",
		Message:   "internal server error",
		Status:    http.StatusInternalServerError,
	}
)
