package main

import (
	"net/http"

	"github.com/Step-sa/net-f/internal/middleware"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		id, err := authSvc.Register(c.Request().Context(), req.Email, req.Password, req.FirstName, req.LastName)
		if err != nil {
			return jsonError(c, err)
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"userid":  id,
			"message": "registration successful, please check your email",
		})
	}
}

func confirmEmailHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if err := authSvc.ConfirmEmail(c.Request().Context(), token); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "email confirmed, you can log in now"})
	}
}

func loginHandler(authSvc *services.AuthService, tokenTTLHours int) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return jsonError(c, err)
		}

		token, err := middleware.GenerateToken(user.UserID, user.Email, user.IsStaff, tokenTTLHours)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create token"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user": echo.Map{
				"userid": user.UserID,
				"email":  user.Email,
				"staff":  user.IsStaff,
			},
		})
	}
}

// meHandler returns the authenticated user's current account record
func meHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		user, err := authSvc.Me(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, tokenTTLHours int) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc))
	auth.GET("/confirm-email", confirmEmailHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc, tokenTTLHours))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", meHandler(authSvc))
}
