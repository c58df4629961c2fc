package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/fitness-studio-booking/internal/config"
	"github.com/iliyamo/fitness-studio-booking/internal/database"
	"github.com/iliyamo/fitness-studio-booking/internal/handler"
	"github.com/iliyamo/fitness-studio-booking/internal/middleware"
	"github.com/iliyamo/fitness-studio-booking/internal/queue"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
	"github.com/iliyamo/fitness-studio-booking/internal/router"
	"github.com/iliyamo/fitness-studio-booking/internal/service"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: open failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: schema init failed: %v", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: seed failed: %v", err)
	}
	cancel()

	classRepo := repository.NewClassRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	workflow := service.NewBookingService(db, classRepo, bookingRepo)

	classHandler := handler.NewClassHandler(classRepo)
	bookingHandler := handler.NewBookingHandler(bookingRepo, workflow)

	// Redis is optional: when unreachable, caching and rate limiting
	// degrade to pass-through middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis: unavailable, caching and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Background consumer appends confirmed bookings to logs/booking.log.
	// It runs its own reconnect loop and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, classHandler, bookingHandler, cacheMW, rateMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
