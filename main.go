package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frazhaidry/DebugDairy/config"
	"github.com/frazhaidry/DebugDairy/database"
	"github.com/frazhaidry/DebugDairy/routes"
	"github.com/frazhaidry/DebugDairy/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	if cfg.JWTSecret == "" {
		utils.Sugar.Fatal("JWT_SECRET is not set")
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(connectCtx, cfg)
	if err != nil {
		utils.Sugar.Fatalf("mongo connect: %v", err)
	}
	db := client.Database(cfg.DBName)

	if err := database.EnsureIndexes(connectCtx, db); err != nil {
		utils.Sugar.Fatalf("ensure indexes: %v", err)
	}
	utils.Sugar.Infof("connected to MongoDB, database %q", cfg.DBName)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.SetupRouter(cfg, db),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		utils.Sugar.Infof("server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Sugar.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Sugar.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Sugar.Errorf("server shutdown: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		utils.Sugar.Errorf("mongo disconnect: %v", err)
	}
}
