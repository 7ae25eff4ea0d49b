package rest

import (
	"net/http"

	"minecart-be/internal/payment"
	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// paymentStatus returns the stored charge state plus whether a background
// watch is still running for it.
func (h *handlers) paymentStatus(c *gin.Context) {
	paymentID := c.Param("id")

	p, err := h.d.Payments.GetPaymentByPaymentID(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.requireChargeOwner(c, p.OrderID); err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_id":   p.PaymentID,
		"order_id":     p.OrderID,
		"status":       p.Status,
		"amount":       p.Amount.StringFixed(2),
		"expires_at":   p.ExpiresAt,
		"instructions": payment.InstructionsFor(p.Method, utils.FormatBRL(p.Amount), p.PayableCode),
		"watching":     h.d.Poller.Watching(p.PaymentID),
	})
}

// cancelPayment aborts a pending charge: the watch is torn down first so no
// notification fires, then the provider charge is voided.
func (h *handlers) cancelPayment(c *gin.Context) {
	paymentID := c.Param("id")
	ctx := c.Request.Context()

	p, err := h.d.Payments.GetPaymentByPaymentID(ctx, paymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.requireChargeOwner(c, p.OrderID); err != nil {
		return
	}

	if p.Status.Terminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "payment already settled"})
		return
	}

	h.d.Poller.Cancel(p.PaymentID)

	if err := h.d.Gateway.CancelCharge(ctx, p.PaymentID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.d.Orders.MarkAsFailed(ctx, p.ReferenceID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// requireChargeOwner resolves the charge's order and enforces ownership.
func (h *handlers) requireChargeOwner(c *gin.Context, orderID uint) error {
	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	isAdmin := utils.GetUserRoleFromContext(ctx) == utils.RoleAdmin

	if _, err := h.d.Orders.GetOrderDetail(ctx, userID, orderID, isAdmin); err != nil {
		respondError(c, err)
		return err
	}
	return nil
}
