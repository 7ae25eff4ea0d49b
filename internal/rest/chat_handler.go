package rest

import (
	"net/http"
	"strconv"

	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// chatHistory returns the caller's own room. Support agents and admins may
// pass ?user_id= to read a buyer's room.
func (h *handlers) chatHistory(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	role := utils.GetUserRoleFromContext(ctx)

	roomUserID := userID
	if role == utils.RoleSupport || role == utils.RoleAdmin {
		if v := c.Query("user_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
				return
			}
			roomUserID = uint(id)
		}
	}

	messages, err := h.d.Chats.History(ctx, roomUserID, queryInt(c, "limit", 100))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
