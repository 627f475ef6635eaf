// user.go - Handles tokens, registration and admin management of users

package handlers

import (
	"errors"
	"net/http"

	"bistro-backend/database"
	"bistro-backend/middleware"
	"bistro-backend/models"

	"github.com/gin-gonic/gin"
)

type TokenInput struct {
	Email string `json:"email" binding:"required"`
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// IssueToken signs an access token for the given email.
func (h *Handler) IssueToken(c *gin.Context) {
	var input TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.Signer.Sign(input.Email)
	if err != nil {
		h.internalError(c, "sign token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateUser registers a user. Registering an existing email changes nothing.
func (h *Handler) CreateUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	user := models.User{Email: input.Email, Name: input.Name, PhotoURL: input.PhotoURL}
	created, err := h.Stores.Users.Register(c.Request.Context(), &user)
	if err != nil {
		h.internalError(c, "register user", err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": user.ID})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Stores.Users.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	deleted, err := h.Stores.Users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

func (h *Handler) PromoteUser(c *gin.Context) {
	matched, modified, err := h.Stores.Users.Promote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "promote user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
}

// IsAdmin reports whether the caller is an admin. Asking about anyone else
// answers false without touching the store.
func (h *Handler) IsAdmin(c *gin.Context) {
	email := c.Param("email")
	if middleware.ClaimsFrom(c).Email != email {
		c.JSON(http.StatusOK, gin.H{"admin": false})
		return
	}

	user, err := h.Stores.Users.FindByEmail(c.Request.Context(), email)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusOK, gin.H{"admin": false})
	case err != nil:
		h.internalError(c, "find user", err)
	default:
		c.JSON(http.StatusOK, gin.H{"admin": user.IsAdmin()})
	}
}
