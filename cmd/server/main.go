package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/toldya/internal/server"
	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
