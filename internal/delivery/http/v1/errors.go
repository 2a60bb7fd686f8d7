package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gtd/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// abortWithServiceError maps the service error taxonomy onto HTTP statuses:
// missing entities are 404, rejected preconditions and validation failures
// are 400, anything else is a 500.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(err.Error()))
	case errors.Is(err, services.ErrTimerNotRunning),
		errors.Is(err, services.ErrTaskNotCompletable),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNameRequired):
		abort(c, newBadRequestError(err.Error()))
	default:
		abort(c, newAPIError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)))
	}
}
