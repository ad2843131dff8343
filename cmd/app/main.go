package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

//go:generate swag init -g cmd/app/main.go -o docs --parseDependency --parseInternal

// @title Hotel Booking & Revenue Ledger API
// @version 1.0
// @description Room availability, booking lifecycle, invoicing and payments for front-desk staff.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if err := helper.AutoMigrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	http := di.InitializeService()
	http.Serve()
}
