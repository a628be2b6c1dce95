package main

import (
	"log"

	"hospital-connect/configuration"
	"hospital-connect/repository"
	"hospital-connect/routes"
)

func main() {
	cfg := configuration.Load()
	db := configuration.ConnectDB(cfg)

	if err := repository.NewUserRepository(db).ClearExpiredResetTokens(); err != nil {
		log.Println("Failed to sweep expired reset tokens:", err)
	}

	r := routes.SetupRoutes(db, cfg)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
