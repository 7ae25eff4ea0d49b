package rest

import (
	"net/http"

	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listFavorites(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	favorites, err := h.d.Favorites.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *handlers) addFavorite(c *gin.Context) {
	productID, err := pathID(c, "productID")
	if err != nil {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	if err := h.d.Favorites.Add(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) removeFavorite(c *gin.Context) {
	productID, err := pathID(c, "productID")
	if err != nil {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	if err := h.d.Favorites.Remove(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
