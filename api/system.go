package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenSource is the slice of the provider client health checks need.
type TokenSource interface {
	MockMode() bool
	Token(ctx context.Context) (string, error)
}

type SystemHandler struct {
	provider TokenSource
}

func NewSystemHandler(provider TokenSource) *SystemHandler {
	return &SystemHandler{provider: provider}
}

func (h *SystemHandler) Register(router *gin.RouterGroup) {
	router.GET("/ping", h.ping)
	router.GET("/health", h.health)
}

func (h *SystemHandler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
}

// health reports token acquisition state without ever hard-failing: a broken
// provider login is a degraded report, not a 500.
func (h *SystemHandler) health(c *gin.Context) {
	if h.provider.MockMode() {
		c.JSON(http.StatusOK, gin.H{"ok": true, "simplybook_token": false, "mock": true})
		return
	}

	token, err := h.provider.Token(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "simplybook_token": false, "token_error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "simplybook_token": token != ""})
}
