// menu.go - Handles the menu and reviews

package handlers

import (
	"errors"
	"net/http"

	"bistro-backend/database"
	"bistro-backend/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMenu(c *gin.Context) {
	items, err := h.Stores.Menu.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "list menu", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMenuItem(c *gin.Context) {
	item, err := h.Stores.Menu.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		notFound(c, "menu item")
		return
	}
	if err != nil {
		h.internalError(c, "get menu item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	item.ID = ""
	if err := h.Stores.Menu.Create(c.Request.Context(), &item); err != nil {
		h.internalError(c, "create menu item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": item.ID})
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	matched, err := h.Stores.Menu.Update(c.Request.Context(), c.Param("id"), &item)
	if err != nil {
		h.internalError(c, "update menu item", err)
		return
	}
	if matched == 0 {
		notFound(c, "menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched})
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	deleted, err := h.Stores.Menu.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "delete menu item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

type ReviewInput struct {
	Name    string  `json:"name"`
	Details string  `json:"details" binding:"required"`
	Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
}

// CreateReview stores a review from a signed-in customer.
func (h *Handler) CreateReview(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	review := models.Review{Name: input.Name, Details: input.Details, Rating: input.Rating}
	if err := h.Stores.Reviews.Create(c.Request.Context(), &review); err != nil {
		h.internalError(c, "create review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": review.ID})
}

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.Stores.Reviews.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "list reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
