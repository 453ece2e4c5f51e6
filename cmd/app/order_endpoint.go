package main

import (
	"net/http"
	"strconv"

	"github.com/Step-sa/net-f/internal/middleware"
	"github.com/Step-sa/net-f/internal/model"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/labstack/echo/v4"
)

type createOrderRequest struct {
	CartID    int64 `json:"cart_id"`
	ContactID int64 `json:"contact_id"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func actorFrom(c echo.Context) services.Actor {
	cl := middleware.GetClaims(c)
	return services.Actor{UserID: cl.UserID, Staff: cl.Staff}
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	// LIST (staff sees all, users see their own)
	p.GET("", func(c echo.Context) error {
		orders, err := os.List(c.Request().Context(), actorFrom(c))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	})

	// DETAIL
	p.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		view, err := os.Get(c.Request().Context(), actorFrom(c), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	})

	// CHECKOUT
	p.POST("/create_from_cart", func(c echo.Context) error {
		req := new(createOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		view, err := os.CreateFromCart(c.Request().Context(), actorFrom(c), req.CartID, req.ContactID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, view)
	})

	// STATUS CHANGE (staff only, audited)
	p.POST("/:id/change_status", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		req := new(changeStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		view, err := os.ChangeStatus(c.Request().Context(), actorFrom(c), id, model.OrderStatus(req.Status), req.Note)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	}, middleware.StaffOnly)

	// CONFIRM (owner only, no history row)
	p.POST("/:id/confirm", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		if err := os.Confirm(c.Request().Context(), actorFrom(c), id); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "order confirmed"})
	})
}
