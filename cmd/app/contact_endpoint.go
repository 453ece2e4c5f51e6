package main

import (
	"net/http"
	"strconv"

	"github.com/Step-sa/net-f/internal/middleware"
	"github.com/Step-sa/net-f/internal/model"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/labstack/echo/v4"
)

type contactRequest struct {
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Patronymic string `json:"patronymic"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Street     string `json:"street"`
	House      string `json:"house"`
	Building   string `json:"building"`
	Structure  string `json:"structure"`
	Apartment  string `json:"apartment"`
}

func (r *contactRequest) toModel() *model.Contact {
	return &model.Contact{
		LastName:   r.LastName,
		FirstName:  r.FirstName,
		Patronymic: r.Patronymic,
		Email:      r.Email,
		Phone:      r.Phone,
		City:       r.City,
		Street:     r.Street,
		House:      r.House,
		Building:   r.Building,
		Structure:  r.Structure,
		Apartment:  r.Apartment,
	}
}

func registerContactRoutes(g *echo.Group, cs *services.ContactService) {
	p := g.Group("/contacts")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		contacts, err := cs.List(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, contacts)
	})

	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(contactRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		contact, err := cs.Create(c.Request().Context(), claims.UserID, req.toModel())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, contact)
	})

	p.GET("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
		}
		contact, err := cs.Get(c.Request().Context(), claims.UserID, id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, contact)
	})

	p.PUT("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
		}
		req := new(contactRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		contact := req.toModel()
		contact.ContactID = id
		if err := cs.Update(c.Request().Context(), claims.UserID, contact); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, contact)
	})

	p.DELETE("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
		}
		if err := cs.Delete(c.Request().Context(), claims.UserID, id); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})
}
