package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errx "github.com/aura-storefront/server/internal/core/error"
	logx "github.com/aura-storefront/server/pkg/logger"
)

const malformedBodyMessage = "malformed request body"

// abortWithError writes the safe message for err. Validation failures carry a
// per-field map.
func abortWithError(c *gin.Context, err error) {
	status, msg := errx.StatusOf(err)
	body := gin.H{"error": msg}

	var ve *errx.ValidationError
	if errors.As(err, &ve) {
		body["fields"] = ve.Fields
	}

	if status >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
	} else {
		logx.Debug().Err(err).Int("status", status).Str("path", c.FullPath()).Msg("request rejected")
	}
	c.AbortWithStatusJSON(status, body)
}

// bindJSON decodes the body into v, answering 400 on malformed input.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		abortWithError(c, errx.BadRequest(err, malformedBodyMessage))
		return false
	}
	return true
}
