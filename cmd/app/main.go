package main

import (
	"context"
	"log"

	"github.com/Step-sa/net-f/external/resend"
	"github.com/Step-sa/net-f/internal/config"
	"github.com/Step-sa/net-f/internal/db"
	"github.com/Step-sa/net-f/internal/repository"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	if err := db.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatal(err)
	}
	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	var mailer services.EmailSender
	if cfg.ConfirmRequired {
		mailer, err = resend.NewResendMailer(cfg.EmailFrom)
		if err != nil {
			log.Fatal(err)
		}
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo, mailer, cfg.ConfirmRequired, cfg.PublicBaseURL)
	catalogSvc := services.NewCatalogService(catalogRepo)
	cartSvc := services.NewCartService(cartRepo, catalogRepo)
	contactSvc := services.NewContactService(contactRepo)
	orderSvc := services.NewOrderService(orderRepo, cartRepo, contactRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, cfg.TokenTTLHours)
	registerProductRoutes(api, catalogSvc)
	registerCartRoutes(api, cartSvc)
	registerContactRoutes(api, contactSvc)
	registerOrderRoutes(api, orderSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
