package main

import (
	"context"
	"log"
	"os"

	"github.com/Step-sa/net-f/internal/config"
	"github.com/Step-sa/net-f/internal/db"
	"github.com/Step-sa/net-f/internal/importer"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <price-list.yaml>", os.Args[0])
	}
	_ = godotenv.Load()
	cfg := config.Load()

	f, err := importer.ParseFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := db.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatal(err)
	}
	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	res, err := importer.Run(ctx, pool, f)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("imported shop %q: %d goods imported, %d skipped", res.Shop, res.Imported, res.Skipped)
}
