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

	"busbackend/internal/config"
	"busbackend/internal/db"
	"busbackend/internal/events"
	api "busbackend/internal/http"
	"busbackend/internal/http/handlers"
	"busbackend/internal/logger"
	"busbackend/internal/repositories"
	"busbackend/internal/services"
)

func main() {
	env := config.LoadEnv()

	log := logger.New(logger.ConsoleWriter(), logger.FileWriter(env.LogFile))
	log.Info("starting busbackend", "addr", env.AppAddr)

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	config.ConnectDB(env)
	defer config.CloseDB()

	if err := db.EnsureSchema(config.DB); err != nil {
		log.Fatal("schema migration failed", "error", err.Error())
	}

	bus := events.NewBus(log)
	defer bus.Close()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := events.StartAuditSubscriber(rootCtx, bus, log); err != nil {
		log.Fatal("audit subscriber init failed", "error", err.Error())
	}

	bookingRepo := repositories.BookingRepository{DB: config.DB}
	routeRepo := repositories.RouteRepository{DB: config.DB}
	userRepo := repositories.UserRepository{DB: config.DB}

	h := &handlers.Handlers{
		Env:      env,
		DB:       config.DB,
		Users:    services.NewUserService(userRepo, log),
		Routes:   services.NewRouteService(routeRepo, bus, log),
		Bookings: services.NewBookingService(bookingRepo, routeRepo, bus, log),
		Docs: services.DocsService{
			BookingRepo: bookingRepo,
			RouteRepo:   routeRepo,
		},
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           api.NewRouter(env, log, h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server stopped", "error", err.Error())
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
