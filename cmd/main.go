package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"recipe-catalog/cmd/config"
	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to open SQL database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	addr := net.JoinHostPort(utils.GetConfig("HOST"), utils.GetConfig("PORT"))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", addr, err)
	}
	log.Infof("Serving on %s", addr)

	// Serve returns after in-flight requests have drained.
	if err := config.Serve(ctx, app, ln); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server closed")
}
