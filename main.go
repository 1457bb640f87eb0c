// @title Menara Matematika API
// @version 1.0
// @description Backend layanan latihan adaptif Menara Matematika.

// @contact.name Tim Menara Matematika

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"menara_math_backend/internal/app"
	"menara_math_backend/internal/config"
	"menara_math_backend/pkg/configwatcher"
	"menara_math_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// migration runs during app init, nothing left to do
	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig(*configPath+"/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Configuration reloaded")
	})

	application.Run()
}
