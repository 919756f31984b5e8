package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/config"
	"github.com/logabaalan777/property-listing/middleware"
	"github.com/logabaalan777/property-listing/routes"
	"github.com/logabaalan777/property-listing/store"
	"github.com/logabaalan777/property-listing/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	mongoClient, err := config.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("Failed to connect to the database", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error closing MongoDB connection", zap.Error(err))
			return
		}
		logger.Info("MongoDB connection closed")
	}()
	logger.Info("Connected to MongoDB")

	db := mongoClient.Database(cfg.DBName)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	redisClient, err := config.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	appCache := cache.NewRedis(redisClient)

	router := mux.NewRouter()
	routes.Register(router, routes.Deps{
		Stores:      store.NewMongoStores(db),
		Cache:       appCache,
		Invalidator: cache.NewInvalidator(appCache, logger),
		JWT:         utils.NewJWTManager(cfg.JWTSecret),
		Logger:      logger,
	})

	handler := middleware.RequestLogger(logger)(router)
	handler = cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(handler)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Error during server shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}
