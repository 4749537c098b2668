package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/Matilda0841/AccountSystem-ZB/internal/config"
	"github.com/Matilda0841/AccountSystem-ZB/internal/events"
	"github.com/Matilda0841/AccountSystem-ZB/internal/handler"
	"github.com/Matilda0841/AccountSystem-ZB/internal/lock"
	"github.com/Matilda0841/AccountSystem-ZB/internal/middleware"
	"github.com/Matilda0841/AccountSystem-ZB/internal/redisconn"
	"github.com/Matilda0841/AccountSystem-ZB/internal/repository"
	"github.com/Matilda0841/AccountSystem-ZB/internal/service"
)

func main() {
	cfg := config.Load()

	// Database connection
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Redis connection
	redis, err := redisconn.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	store := repository.NewStore(db)
	cache := repository.NewAccountViewCache(redis.Client, time.Hour)
	publisher := events.NewPublisher(redis.Client)
	guard := lock.NewRedisGuard(redis.Client, lock.DefaultOptions())

	accountService := service.NewAccountService(store, guard, cache, publisher, cfg.MinInitialBalance)
	transactionService := service.NewTransactionService(store, guard, cache, publisher)

	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	// Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.POST("/accounts", accountHandler.OpenAccount)
		v1.DELETE("/accounts", accountHandler.CloseAccount)
		v1.GET("/accounts", accountHandler.ListAccounts)
		v1.GET("/accounts/:id", accountHandler.GetAccount)
		v1.POST("/transactions/use", transactionHandler.UseBalance)
		v1.POST("/transactions/cancel", transactionHandler.CancelBalance)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Ledger service starting on port %s (env=%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until a stop signal, then drain in-flight requests before closing
	// the database and Redis connections.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Printf("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}

	if err := db.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
	if err := redis.Close(); err != nil {
		log.Printf("Failed to close Redis: %v", err)
	}
	log.Printf("Server exited")
}
