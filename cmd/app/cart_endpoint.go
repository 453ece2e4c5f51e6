package main

import (
	"net/http"
	"strconv"

	"github.com/Step-sa/net-f/internal/middleware"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ProductInfoID int64 `json:"product_info_id"`
	Qty           int   `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")
	p.Use(middleware.JWTMiddleware())

	// GET cart
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		cart, err := cs.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// ADD item (creates the cart on first touch)
	p.POST("/add", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		if err := cs.Add(c.Request().Context(), claims.UserID, req.ProductInfoID, req.Qty); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "added"})
	})

	// REMOVE item
	p.DELETE("/item/:id/remove", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cart item id"})
		}
		if err := cs.Remove(c.Request().Context(), claims.UserID, itemID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "removed"})
	})
}
