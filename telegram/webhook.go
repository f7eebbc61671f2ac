package telegram

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WebhookHandler returns a gin handler that feeds posted updates into
// the bot. Telegram retries on non-2xx, so decode failures return 400
// while handled updates always return 200.
func WebhookHandler(b *Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		var u Update
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
			return
		}
		b.HandleUpdate(c.Request.Context(), u)
		c.Status(http.StatusOK)
	}
}

// NewWebhookRouter builds the gin engine serving the webhook at path
// plus a liveness probe at /healthz.
func NewWebhookRouter(b *Bot, path string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.POST(path, WebhookHandler(b))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}
