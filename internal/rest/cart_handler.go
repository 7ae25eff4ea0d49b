package rest

import (
	"net/http"

	"minecart-be/internal/cart"
	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *handlers) getCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	items, err := h.d.Carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	item, err := h.d.Carts.AddToCart(c.Request.Context(), cart.AddToCartParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	productID, err := pathID(c, "productID")
	if err != nil {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	if err := h.d.Carts.UpdateCartQuantity(c.Request.Context(), cart.UpdateQuantityParams{
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	productID, err := pathID(c, "productID")
	if err != nil {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	if err := h.d.Carts.RemoveFromCart(c.Request.Context(), cart.RemoveParams{
		UserID:    userID,
		ProductID: productID,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) clearCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	if err := h.d.Carts.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
