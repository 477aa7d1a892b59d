package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/santaworkshop/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidProfileName = "INVALID_PROFILE_NAME"
	CodeNoActiveProfile    = "NO_ACTIVE_PROFILE"
	CodeItemNotFound       = "ITEM_NOT_FOUND"
	CodeAlreadyOwned       = "ALREADY_OWNED"
	CodeInsufficientPoints = "INSUFFICIENT_POINTS"
	CodeUnknownGame        = "UNKNOWN_GAME"
	CodeSessionNotRunning  = "SESSION_NOT_RUNNING"
	CodeInvalidOption      = "INVALID_OPTION"
	CodeInvalidCard        = "INVALID_CARD"
	CodeInvalidDirection   = "INVALID_DIRECTION"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidProfileName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidProfileName, "Profile name must not be empty"}}
	case errors.Is(err, model.ErrNoActiveProfile):
		return &httpError{http.StatusUnauthorized, APIError{CodeNoActiveProfile, "Log in to a profile first"}}
	case errors.Is(err, model.ErrItemNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeItemNotFound, "Shop item not found"}}
	case errors.Is(err, model.ErrAlreadyOwned):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyOwned, "Item is already owned"}}
	case errors.Is(err, model.ErrInsufficientPoints):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPoints, "Not enough points"}}
	case errors.Is(err, model.ErrUnknownGame):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownGame, "Unknown game"}}
	case errors.Is(err, model.ErrSessionNotRunning):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotRunning, "Game is not running"}}
	case errors.Is(err, model.ErrInvalidOption):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidOption, "Answer option out of range"}}
	case errors.Is(err, model.ErrInvalidCard):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCard, "Card does not exist"}}
	case errors.Is(err, model.ErrInvalidDirection):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDirection, "Direction must be up, down, left or right"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
