// Package util holds small HTTP-adjacent helpers shared by the handlers.
package util

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/maxfilov/shazam/internal/errors"
	"github.com/maxfilov/shazam/internal/logger"
	"go.uber.org/zap"
)

// RespondError writes an APIError to the response as plain text, matching
// §6's "400 with plain-text reason" / "500 with plain-text exception message"
// contract. Errors at or above 500 are logged; 4xx are not (client mistakes,
// not operational events).
func RespondError(c *gin.Context, apiErr *apierrors.APIError) {
	if apiErr.Status >= 500 {
		logger.Log.Error("request failed",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
			zap.Int("status", apiErr.Status),
		)
	}
	c.String(apiErr.Status, apiErr.Message)
}
