package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aura-storefront/server/pkg/ratelimit"
)

type handler struct {
	svc     Services
	metrics *Metrics
	limiter *ratelimit.Limiter
}

func (h *handler) register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := r.Group("/api")

	api.GET("/products", h.listProducts)
	api.GET("/products/search", h.searchProducts)
	api.GET("/products/:slug", h.getProduct)
	api.GET("/categories", h.categories)

	api.GET("/blog", h.listPosts)
	api.GET("/blog/:slug", h.getPost)

	shop := api.Group("", cartSession())
	shop.GET("/cart", h.getCart)
	shop.POST("/cart/items", h.addCartItem)
	shop.PATCH("/cart/items/:key", h.updateCartItem)
	shop.DELETE("/cart/items/:key", h.removeCartItem)
	shop.DELETE("/cart/products/:id", h.removeCartProduct)
	shop.DELETE("/cart", h.clearCart)
	shop.GET("/checkout/quote", h.quote)
	shop.POST("/checkout", h.optionalAuth(), h.placeOrder)

	api.POST("/auth/login", h.login)
	api.POST("/auth/register", h.signup)
	api.POST("/auth/logout", h.logout)

	account := api.Group("/account", h.requireAuth())
	account.GET("", h.account)
	account.GET("/orders", h.listOrders)
	account.GET("/orders/:id", h.getOrder)

	api.POST("/stylist/chat", rateLimit(h.limiter, h.metrics), h.chat)
	api.GET("/stylist/welcome", h.welcome)
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"stylist_online": h.svc.Stylist != nil && h.svc.Stylist.Online(),
	})
}
