package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainerrors "auto-concierge.backend/internal/domain/errors"
)

// OK sends a success envelope: {"ok": true} merged with the payload fields
func OK(c *gin.Context, status int, data gin.H) {
	payload := gin.H{"ok": true}
	for k, v := range data {
		payload[k] = v
	}
	c.JSON(status, payload)
}

// Error sends an error envelope: {"ok": false, "code": ..., "error": ...}.
// Anything that is not an AppError collapses to a generic 500 so internal
// detail never reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"ok":    false,
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}

// AbortError sends an error envelope and stops the handler chain
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
