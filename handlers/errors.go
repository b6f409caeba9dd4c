package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/logger"
)

// internalError logs err and answers 500 with a message that does not leak it.
func internalError(c *gin.Context, log *zap.Logger, message string, err error) {
	log.Error(message,
		zap.Error(err),
		zap.String("request_id", logger.RequestID(c)),
		zap.String("path", c.FullPath()),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
