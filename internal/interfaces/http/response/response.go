package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "team-management.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// NoContent sends an empty response with the given status
func NoContent(c *gin.Context, status int) {
	c.Status(status)
}

// Error sends an error response.
// Domain sentinels and validation errors are mapped to their HTTP status; anything else is a 500.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.ToAppError(err)

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	c.JSON(appErr.Status, body)
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
