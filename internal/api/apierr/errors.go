package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cluequest/cluequest-go/internal/llm"
	"github.com/cluequest/cluequest-go/internal/model"
	"github.com/cluequest/cluequest-go/internal/services/account"
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
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeUsernameTaken         = "USERNAME_TAKEN"
	CodeNoSuchUser            = "NO_SUCH_USER"
	CodeWrongPassword         = "WRONG_PASSWORD"
	CodeAccountNotFound       = "ACCOUNT_NOT_FOUND"
	CodeInvalidDifficulty     = "INVALID_DIFFICULTY"
	CodeLevelInProgress       = "LEVEL_IN_PROGRESS"
	CodeGenerationInFlight    = "GENERATION_IN_FLIGHT"
	CodeGenerationUnavailable = "GENERATION_UNAVAILABLE"
	CodeMalformedScenario     = "MALFORMED_SCENARIO"
	CodeCulpritMismatch       = "CULPRIT_MISMATCH"
	CodeNoActiveScenario      = "NO_ACTIVE_SCENARIO"
	CodeInvalidStage          = "INVALID_STAGE"
	CodeClueNotFound          = "CLUE_NOT_FOUND"
	CodeSuspectNotFound       = "SUSPECT_NOT_FOUND"
	CodeProgressConflict      = "PROGRESS_CONFLICT"
	CodeInternalError         = "INTERNAL_ERROR"
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

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username is already taken"}}
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "Account not found"}}
	case errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDifficulty, "Difficulty must be easy, medium or hard"}}
	case errors.Is(err, model.ErrLevelInProgress):
		return &httpError{http.StatusConflict, APIError{CodeLevelInProgress, "A level is already in progress"}}
	case errors.Is(err, model.ErrGenerationInFlight):
		return &httpError{http.StatusConflict, APIError{CodeGenerationInFlight, "A mystery is already being generated"}}
	case errors.Is(err, model.ErrMalformedScenario):
		return &httpError{http.StatusBadGateway, APIError{CodeMalformedScenario, "Generated mystery was malformed, try again"}}
	case errors.Is(err, model.ErrCulpritMismatch):
		return &httpError{http.StatusBadGateway, APIError{CodeCulpritMismatch, "Generated mystery was inconsistent, try again"}}
	case errors.Is(err, model.ErrNoActiveScenario):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveScenario, "No level in progress"}}
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidStage, "Action not available at this stage"}}
	case errors.Is(err, model.ErrClueNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeClueNotFound, "No such clue"}}
	case errors.Is(err, model.ErrSuspectNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSuspectNotFound, "No such suspect"}}
	case errors.Is(err, model.ErrProgressRegression):
		return &httpError{http.StatusConflict, APIError{CodeProgressConflict, "Stored progress is ahead of this session"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	// Map account errors
	case errors.Is(err, account.ErrNoSuchUser):
		return &httpError{http.StatusNotFound, APIError{CodeNoSuchUser, "Username does not exist"}}
	case errors.Is(err, account.ErrWrongPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongPassword, "Incorrect password"}}
	case errors.Is(err, account.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	// Map generation errors
	case errors.Is(err, llm.ErrGenerationUnavailable):
		return &httpError{http.StatusBadGateway, APIError{CodeGenerationUnavailable, "Mystery generation is unavailable, try again"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
