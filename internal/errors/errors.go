package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrGadgetNotFound is returned when a gadget is not found.
	ErrGadgetNotFound = errors.New("gadget not found")
	// ErrInvalidGadgetID is returned when a gadget identifier is not a valid UUID.
	ErrInvalidGadgetID = errors.New("invalid gadget id")
	// ErrInvalidStatus is returned when a status value is not one of the four lifecycle states.
	ErrInvalidStatus = errors.New("invalid gadget status")
	// ErrAlreadyDecommissioned is returned when decommissioning a gadget that already is.
	ErrAlreadyDecommissioned = errors.New("gadget was already Decommissioned")
	// ErrAlreadyDestroyed is returned when destroying a gadget that already is.
	ErrAlreadyDestroyed = errors.New("gadget was already Destroyed")
	// ErrDuplicateUsername is returned when registering a username that is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUnknownUser is returned internally when no user matches the username.
	// Externally it renders the same message as ErrInvalidCredentials.
	ErrUnknownUser = errors.New("unknown user")
	// ErrInvalidCredentials is returned when the password comparison fails.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMissingToken is returned when a protected route is called without a bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when a token fails signature, format or expiry
	// checks, or has been revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Both authentication
// failure kinds collapse into one generic message so callers cannot
// enumerate usernames.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrGadgetNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GADGET_NOT_FOUND")
	case errors.Is(err, ErrInvalidGadgetID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_GADGET_ID")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrAlreadyDecommissioned):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_DECOMMISSIONED")
	case errors.Is(err, ErrAlreadyDestroyed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_DESTROYED")
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrUnknownUser), errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "MISSING_TOKEN")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
