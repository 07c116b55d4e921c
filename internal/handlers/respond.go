package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/Mostakim52/khuje-nao/pkg/errors"
	"github.com/Mostakim52/khuje-nao/pkg/logger"
)

// respondError maps service errors onto the wire. AppErrors carry their own
// status; anything else is a 500 with the detail kept server-side.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled handler error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// pagination reads ?limit=&skip= with sane fallbacks.
func pagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	skip := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("skip")); err == nil && v >= 0 {
		skip = v
	}
	return limit, skip
}
