package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
// Kind is a machine-readable identifier callers can branch on.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code and kind.
// If it's not an AppError, it defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, Kind: appErr.Kind})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
