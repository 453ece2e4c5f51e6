package main

import (
	"net/http"
	"strconv"

	"github.com/Step-sa/net-f/internal/services"

	"github.com/labstack/echo/v4"
)

// registerProductRoutes mounts the public catalog browse endpoints.
//
//	GET /products      -> list (filter via ?search=)
//	GET /products/:id  -> detail
func registerProductRoutes(g *echo.Group, cs *services.CatalogService) {
	p := g.Group("/products")

	p.GET("", func(c echo.Context) error {
		views, err := cs.List(c.Request().Context(), c.QueryParam("search"))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, views)
	})

	p.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		view, err := cs.Get(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	})
}
