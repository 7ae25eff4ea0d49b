package rest

import (
	"minecart-be/internal/cart"
	"minecart-be/internal/chat"
	"minecart-be/internal/favorite"
	"minecart-be/internal/middleware"
	"minecart-be/internal/notification"
	"minecart-be/internal/order"
	"minecart-be/internal/payment"
	"minecart-be/internal/payment/webhook"
	"minecart-be/internal/product"
	"minecart-be/internal/user"
	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Users         user.Service
	Products      product.Service
	Carts         cart.Service
	Favorites     favorite.Service
	Orders        order.Service
	Payments      payment.Repository
	Gateway       payment.Gateway
	Poller        *payment.Poller
	Notifications notification.Service
	Chats         chat.Service
	ChatHub       *chat.Hub
	Webhook       *webhook.Handler
}

// NewRouter wires the full route table.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Auth())
	r.Use(middleware.RateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// provider callback, no auth
	r.POST("/webhook/pix", gin.WrapF(d.Webhook.WebhookHandler))

	h := &handlers{d: d}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
		}

		api.GET("/me", middleware.RequireAuth(), h.me)

		products := api.Group("/products")
		{
			products.GET("", h.listProducts)
			products.GET("/:id", h.getProduct)
			products.POST("", middleware.RequireAuth(), middleware.RequireRole(utils.RoleSeller, utils.RoleAdmin), h.createProduct)
			products.PUT("/:id", middleware.RequireAuth(), middleware.RequireRole(utils.RoleSeller, utils.RoleAdmin), h.updateProduct)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			cartGroup := authed.Group("/cart")
			{
				cartGroup.GET("", h.getCart)
				cartGroup.DELETE("", h.clearCart)
				cartGroup.POST("/items", h.addCartItem)
				cartGroup.PUT("/items/:productID", h.updateCartItem)
				cartGroup.DELETE("/items/:productID", h.removeCartItem)
			}

			favorites := authed.Group("/favorites")
			{
				favorites.GET("", h.listFavorites)
				favorites.POST("/:productID", h.addFavorite)
				favorites.DELETE("/:productID", h.removeFavorite)
			}

			orders := authed.Group("/orders")
			{
				orders.POST("", h.checkout)
				orders.GET("", h.listOrders)
				orders.GET("/:id", h.getOrder)
			}

			payments := authed.Group("/payments")
			{
				payments.GET("/:id/status", h.paymentStatus)
				payments.DELETE("/:id", h.cancelPayment)
			}

			notifications := authed.Group("/notifications")
			{
				notifications.GET("", h.listNotifications)
				notifications.PUT("/:id/read", h.markNotificationRead)
			}

			authed.GET("/chat/history", h.chatHistory)
		}
	}

	r.GET("/ws/chat", middleware.RequireAuth(), gin.WrapF(d.ChatHub.ServeWS))

	return r
}

type handlers struct {
	d Deps
}
