package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/PaulBabatuyi/msgBoard-REST/internal/data"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/db"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/hub"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/logging"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/metrics"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/middleware"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/service"
)

func main() {
	logging.Init(os.Getenv("ENV"))

	// Read configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal().Msg("MONGODB_URI must be set")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// RATE_LIMIT_RPM controls requests per minute for signup/login.
	rateRPM := 10
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateRPM = n
		}
	}

	ctx := context.Background()

	// Initialize database
	dbClient, err := db.New(ctx, mongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer func() {
		_ = dbClient.Close(ctx)
	}()

	// Ensure indexes exist
	if err := dbClient.CreateIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// Stores and services
	usersStore := data.NewUsersStore(dbClient.UsersCollection())
	msgsStore := data.NewMessagesStore(dbClient.MessagesCollection())
	userSvc := service.NewUserService(usersStore)
	msgSvc := service.NewMessageService(msgsStore)

	// Notification hub and metrics
	boardHub := hub.New()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry, boardHub.Count)

	// Limiter for signup/login (small burst to allow a couple of quick retries)
	limiterStore := middleware.NewLimiterStore(rateRPM, 3, 1*time.Minute)
	defer limiterStore.Stop()

	router := newRouter(routerDeps{
		api: &api{
			users:     userSvc,
			msgs:      msgSvc,
			notify:    boardHub,
			collector: collector,
			health:    dbClient,
		},
		hub:      boardHub,
		limiter:  limiterStore,
		gatherer: registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server exit")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
