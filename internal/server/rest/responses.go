package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response bodies shared by several handlers.
var (
	bodyMalformed = gin.H{"error": "Malformed request body."}
	bodyInternal  = gin.H{"error": "Internal server error."}
)

// fail aborts with an internal error and logs the cause.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, bodyInternal)
}
