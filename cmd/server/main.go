package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Praveenkumarspk1/blog-wise/internal/assistant"
	"github.com/Praveenkumarspk1/blog-wise/internal/config"
	"github.com/Praveenkumarspk1/blog-wise/internal/content"
	"github.com/Praveenkumarspk1/blog-wise/internal/db"
	routes "github.com/Praveenkumarspk1/blog-wise/internal/http"
	"github.com/Praveenkumarspk1/blog-wise/internal/models"
	"github.com/Praveenkumarspk1/blog-wise/internal/social"
	"github.com/Praveenkumarspk1/blog-wise/internal/ws"
)

func main() {
	// Load .env before anything reads the environment. Missing file is
	// fine; production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 1. Initialize Database
	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 2. Run Migrations
	log.Println("Running database migrations...")
	if err := database.AutoMigrate(
		&models.Profile{},
		&models.Post{},
		&models.Follow{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations complete.")

	// 3. Initialize WebSocket Hub
	hub := ws.NewHub()
	go hub.Run()

	// 4. Wire services
	assistantClient := assistant.NewClient(cfg.AssistantAPIURL, cfg.AssistantAPIKey)
	env := &routes.Env{
		DB:        database,
		Content:   content.NewService(database),
		Social:    social.NewService(database),
		Assistant: assistant.NewService(assistantClient),
		Hub:       hub,
	}

	// 5. Initialize Gin Router
	router := gin.Default()
	routes.SetupRoutes(router, env, cfg.CORSOrigin)

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
