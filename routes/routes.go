package routes

import (
	"localeats/configs"
	"localeats/controllers"
	"localeats/middlewares"
	"localeats/ws"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the route table needs; main owns construction.
type Deps struct {
	Cfg         *configs.Config
	Auth        *controllers.AuthController
	Catalog     *controllers.CatalogController
	Cart        *controllers.CartController
	Orders      *controllers.OrderController
	OwnerOrders *controllers.OwnerOrderController
	Track       *ws.TrackHub
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.Use(middlewares.RequestID())
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	secret := d.Cfg.JWTSecret

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/login", d.Auth.Login)
		a.GET("/me", middlewares.AuthMiddleware(secret), d.Auth.Me)
	}

	// Browse (public)
	r.GET("/restaurants", d.Catalog.ListRestaurants)
	r.GET("/restaurants/:id", d.Catalog.GetRestaurant)
	r.GET("/restaurants/:id/menu", d.Catalog.ListMenu)

	// Cart + checkout (customer)
	u := r.Group("/", middlewares.AuthMiddleware(secret))
	{
		u.GET("/cart", d.Cart.Get)
		u.PATCH("/cart", d.Cart.SetTip)
		u.DELETE("/cart", d.Cart.Clear)
		u.POST("/cart/items", d.Cart.AddItem)
		u.PATCH("/cart/items/:id", d.Cart.UpdateItem)
		u.DELETE("/cart/items/:id", d.Cart.RemoveItem)
		u.POST("/cart/discount", d.Cart.ApplyDiscount)
		u.DELETE("/cart/discount", d.Cart.RemoveDiscount)

		u.POST("/orders", d.Orders.Checkout)
		u.GET("/orders", d.Orders.List)
		u.GET("/orders/:id", d.Orders.Get)
		u.PATCH("/orders/:id", d.Orders.Update)
		u.DELETE("/orders/:id", d.Orders.Cancel)
	}

	// Restaurant dashboard (owner/admin)
	partner := r.Group("/partner", middlewares.AuthMiddleware(secret, "owner", "admin"))
	{
		partner.GET("/orders", d.OwnerOrders.List)
		partner.GET("/orders/:id", d.OwnerOrders.Get)
		partner.PATCH("/orders/:id/status", d.OwnerOrders.UpdateStatus)
	}

	// Live status stream
	r.GET("/ws/orders/:id", middlewares.WSAuthMiddleware(secret), d.Track.HandleTrack)
}
