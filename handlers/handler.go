// handler.go - Shared dependencies and helpers for HTTP handlers

package handlers

import (
	"log/slog"
	"net/http"

	"bistro-backend/auth"
	"bistro-backend/database"
	"bistro-backend/middleware"
	"bistro-backend/payments"

	"github.com/gin-gonic/gin"
)

// Publisher sends a message to a broker topic.
type Publisher interface {
	Publish(topic string, payload interface{}) error
}

// Handler holds everything the route handlers need. All fields are set at
// startup and never modified afterwards.
type Handler struct {
	Stores       *database.Stores
	Signer       *auth.Signer
	Payments     payments.IntentCreator
	Kitchen      Publisher
	KitchenTopic string
	Currency     string
	Log          *slog.Logger
}

func badRequest(c *gin.Context, err error) {
	middleware.Abort(c, http.StatusBadRequest, "bad_request", err.Error())
}

func notFound(c *gin.Context, what string) {
	middleware.Abort(c, http.StatusNotFound, "not_found", what+" not found")
}

// internalError logs err and hides it from the client.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.Log.ErrorContext(c.Request.Context(), msg, "path", c.FullPath(), "err", err)
	middleware.Abort(c, http.StatusInternalServerError, "internal", "internal server error")
}
