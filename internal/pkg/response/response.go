package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError translates a service error into a status code and error body.
// Errors without a known kind are attached to the context for ErrorLogger and
// answered with a generic 500.
func FromError(c *gin.Context, err error) {
	kind := apperr.Kind(err)
	switch kind {
	case apperr.ErrNotFound:
		Error(c, http.StatusNotFound, "NOT_FOUND", message(err, kind))
	case apperr.ErrUnsupportedState:
		Error(c, http.StatusBadRequest, "UNSUPPORTED_STATUS", message(err, kind))
	case apperr.ErrBadRequest:
		Error(c, http.StatusBadRequest, "BAD_REQUEST", message(err, kind))
	case apperr.ErrConflict:
		Error(c, http.StatusConflict, "CONFLICT", message(err, kind))
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// message drops the leading kind so clients read "Unknown state: X", not
// "unsupported state: Unknown state: X".
func message(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}
