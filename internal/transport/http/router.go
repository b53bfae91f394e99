package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/nstepanov-hw/shop-api/internal/handlers"
	"github.com/nstepanov-hw/shop-api/internal/middleware/auth"
	"github.com/nstepanov-hw/shop-api/internal/users"
)

type Deps struct {
	Users         *users.Service
	MathHandler   *handlers.MathHandler
	ItemHandler   *handlers.ItemHandler
	CartHandler   *handlers.CartHandler
	UserHandler   *handlers.UserHandler
	SearchHandler *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/factorial", d.MathHandler.Factorial)
	e.GET("/fibonacci", d.MathHandler.Fibonacci)
	e.GET("/fibonacci/:n", d.MathHandler.Fibonacci)
	e.GET("/mean", d.MathHandler.Mean)
	e.POST("/mean", d.MathHandler.Mean)

	item := e.Group("/item")
	item.POST("", d.ItemHandler.CreateItem)
	item.GET("", d.ItemHandler.GetItems)
	item.GET("/search", d.SearchHandler.Search)
	item.GET("/:id", d.ItemHandler.GetItem)
	item.PUT("/:id", d.ItemHandler.ReplaceItem)
	item.PATCH("/:id", d.ItemHandler.PatchItem)
	item.DELETE("/:id", d.ItemHandler.DeleteItem)

	cart := e.Group("/cart")
	cart.POST("", d.CartHandler.CreateCart)
	cart.GET("", d.CartHandler.GetCarts)
	cart.GET("/:id", d.CartHandler.GetCart)
	cart.POST("/:cart_id/add/:item_id", d.CartHandler.AddItemToCart)

	basicAuth := auth.RequireBasicAuth(d.Users)

	e.POST("/user-register", d.UserHandler.Register)
	e.POST("/user-login", d.UserHandler.Login)
	e.POST("/user-get", d.UserHandler.GetUser, basicAuth)
	e.POST("/user-promote", d.UserHandler.PromoteUser, basicAuth, auth.AdminOnly(d.Users))
}
