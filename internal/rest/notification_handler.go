package rest

import (
	"net/http"

	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listNotifications(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.d.Notifications.List(c.Request.Context(), userID, unreadOnly, queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *handlers) markNotificationRead(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	if err := h.d.Notifications.MarkRead(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
