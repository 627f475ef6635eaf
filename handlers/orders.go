// orders.go - Handles carts, payment intents and recorded payments
//
// Cart and payment documents belong to the email stored on them. Every
// handler here checks ownership against the token before touching the
// store and returns as soon as access is denied.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"bistro-backend/auth"
	"bistro-backend/database"
	"bistro-backend/middleware"
	"bistro-backend/models"
	"bistro-backend/payments"

	"github.com/gin-gonic/gin"
)

type PaymentIntentInput struct {
	Price float64 `json:"price" binding:"required"`
}

// KitchenOrder is the message published for each recorded payment.
type KitchenOrder struct {
	PaymentID string    `json:"paymentId"`
	Email     string    `json:"email"`
	Items     []string  `json:"items"`
	Price     float64   `json:"price"`
	At        time.Time `json:"at"`
}

func (h *Handler) AddToCart(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	if err := auth.SelfAccess(middleware.ClaimsFrom(c), item.Email); err != nil {
		middleware.Deny(c, err)
		return
	}
	item.ID = ""
	if err := h.Stores.Carts.Add(c.Request.Context(), &item); err != nil {
		h.internalError(c, "add cart item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": item.ID})
}

// ListCart lists the caller's cart. Without an email query it returns an
// empty list.
func (h *Handler) ListCart(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, []models.CartItem{})
		return
	}
	if err := auth.SelfAccess(middleware.ClaimsFrom(c), email); err != nil {
		middleware.Deny(c, err)
		return
	}
	items, err := h.Stores.Carts.ListByEmail(c.Request.Context(), email)
	if err != nil {
		h.internalError(c, "list cart", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteCartItem removes one of the caller's cart items. A missing item is
// denied like someone else's, so a caller cannot tell which cart IDs exist.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	ctx := c.Request.Context()
	item, err := h.Stores.Carts.Get(ctx, c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		middleware.Deny(c, auth.ErrForbidden)
		return
	}
	if err != nil {
		h.internalError(c, "get cart item", err)
		return
	}
	if err := auth.SelfAccess(middleware.ClaimsFrom(c), item.Email); err != nil {
		middleware.Deny(c, err)
		return
	}
	deleted, err := h.Stores.Carts.Delete(ctx, item.ID)
	if err != nil {
		h.internalError(c, "delete cart item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var input PaymentIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	amount, err := payments.AmountFromPrice(input.Price)
	if err != nil {
		badRequest(c, err)
		return
	}
	secret, err := h.Payments.CreateIntent(c.Request.Context(), amount, h.Currency)
	if err != nil {
		h.internalError(c, "create payment intent", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// RecordPayment stores a completed payment, clears the paid cart items and
// notifies the kitchen.
func (h *Handler) RecordPayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		badRequest(c, err)
		return
	}
	if err := auth.SelfAccess(middleware.ClaimsFrom(c), payment.Email); err != nil {
		middleware.Deny(c, err)
		return
	}
	payment.ID = ""

	ctx := c.Request.Context()
	deleted, err := h.Stores.Payments.Record(ctx, &payment)
	if err != nil {
		h.internalError(c, "record payment", err)
		return
	}

	order := KitchenOrder{
		PaymentID: payment.ID,
		Email:     payment.Email,
		Items:     payment.ItemNames,
		Price:     payment.Price,
		At:        payment.Date,
	}
	if err := h.Kitchen.Publish(h.KitchenTopic, order); err != nil {
		h.Log.WarnContext(ctx, "kitchen notify failed", "payment_id", payment.ID, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentResult": gin.H{"insertedId": payment.ID},
		"deleteResult":  gin.H{"deletedCount": deleted},
	})
}

// ListPayments runs behind RequireSelf("email").
func (h *Handler) ListPayments(c *gin.Context) {
	list, err := h.Stores.Payments.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.internalError(c, "list payments", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
