// Package handlers implements the tracker's HTTP endpoints: jobs,
// candidates, assessments, and admin operations.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// failInjected responds with the injected-failure body. Handlers call it
// before touching the store so a failed write leaves no partial state.
func failInjected(c *gin.Context, message string) {
	errorResponse(c, http.StatusInternalServerError, message)
}
