// routes.go - Route table

package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"bistro-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the Gin engine with every route and its gates.
func NewRouter(h *Handler, corsOrigins []string, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), cors.New(corsConfig(corsOrigins)))

	authn := middleware.Authenticate(h.Signer)
	admin := middleware.RequireAdmin(h.Stores.Users)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "restaurant data are coming")
	})

	// Users
	r.POST("/jwt", h.IssueToken)
	r.POST("/users", h.CreateUser)
	r.GET("/users", authn, admin, h.ListUsers)
	r.DELETE("/users/:id", authn, admin, h.DeleteUser)
	r.PATCH("/users/admin/:id", authn, admin, h.PromoteUser)
	r.GET("/users/admin/:email", authn, h.IsAdmin)

	// Menu and reviews
	r.GET("/menu", h.ListMenu)
	r.GET("/menu/:id", h.GetMenuItem)
	r.POST("/menu", authn, admin, h.CreateMenuItem)
	r.PATCH("/menu/:id", authn, admin, h.UpdateMenuItem)
	r.DELETE("/menu/:id", authn, admin, h.DeleteMenuItem)
	r.GET("/reviews", h.ListReviews)
	r.POST("/reviews", authn, h.CreateReview)

	// Paths used by the existing dashboard client
	r.GET("/dashboard/manageItems/updateMenu/:id", h.GetMenuItem)
	r.PATCH("/updateMenu/:id", authn, admin, h.UpdateMenuItem)

	// Carts and payments
	r.POST("/carts", authn, h.AddToCart)
	r.GET("/carts", authn, h.ListCart)
	r.DELETE("/carts/:id", authn, h.DeleteCartItem)
	r.POST("/create-payment-intent", authn, h.CreatePaymentIntent)
	r.POST("/payments", authn, h.RecordPayment)
	r.GET("/payments/:email", authn, middleware.RequireSelf("email"), h.ListPayments)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
