package rest

import (
	"net/http"

	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type checkoutRequest struct {
	// ExpectedTotal lets the client assert the total it showed the buyer.
	// A mismatch against the server-side cart rejects the checkout.
	ExpectedTotal *string `json:"expected_total"`
}

// checkout freezes the cart into a snapshot and opens a PIX charge for it.
func (h *handlers) checkout(c *gin.Context) {
	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	snap, err := h.d.Carts.Snapshot(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.ExpectedTotal != nil {
		expected, convErr := decimal.NewFromString(*req.ExpectedTotal)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expected_total"})
			return
		}
		snap.Total = expected
	}

	desc, err := h.d.Orders.Checkout(ctx, userID, snap)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, desc)
}

func (h *handlers) listOrders(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	orders, err := h.d.Orders.GetOrders(c.Request.Context(), userID, queryInt(c, "page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) getOrder(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	isAdmin := utils.GetUserRoleFromContext(ctx) == utils.RoleAdmin

	o, err := h.d.Orders.GetOrderDetail(ctx, userID, orderID, isAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
