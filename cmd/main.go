// Package main is the entry point for the tier-pricing-service application.
//
// @title           Tier Pricing Service API
// @version         1.0.0
// @description     Tiered quantity discounts for shop carts.
//
//	Eligible cart items are pooled by quantity; the highest tier the pool reaches
//	discounts that many units in cart order and every line gets its average unit price.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/tier-pricing-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Pricing
// @tag.description Cart pricing and stateless calculation
//
// @tag.name        Tiers
// @tag.description Versioned tier configuration
//
// @tag.name        Products
// @tag.description Catalog products and variations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/guttosm/tier-pricing-service/docs" // swagger docs

	"github.com/guttosm/tier-pricing-service/config"
	"github.com/guttosm/tier-pricing-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewServer(application.Router, cfg.Server.Port, cfg.Server.RequestTimeout+5*time.Second)
	runErr := server.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Close(closeCtx); err != nil {
		log.Warn().Err(err).Msg("Failed to release resources")
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
