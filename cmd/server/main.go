package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/flash"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/logger"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/router"
	"github.com/iliyamo/venue-booking/internal/service"
	"github.com/iliyamo/venue-booking/internal/view"
)

func main() {
	envFileErr := godotenv.Load()

	cfg, err := config.Load()
	logger.Init(cfg.IsDevelopment())
	if envFileErr != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.DBHost).Msg("connect database")
	}
	defer db.Close()
	if cfg.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("apply schema")
		}
	}

	renderer, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	// Redis is optional: without it flashes live in a cookie and the API
	// runs uncached and unthrottled.
	rdb := config.NewRedisClient()
	var flashes flash.Store = flash.CookieStore{}
	if rdb != nil {
		defer rdb.Close()
		flashes = flash.NewRedisStore(rdb)
		log.Info().Msg("redis connected")
	} else {
		log.Warn().Msg("redis unavailable: cookie flashes, no cache, no rate limit")
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		events = service.NewAMQPPublisher(cfg.AMQPURL)
		go func() {
			if err := queue.StartActivityConsumer(ctx, cfg.AMQPURL, cfg.EventsLogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("activity consumer stopped")
			}
		}()
	}

	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)

	base := &handler.Base{Flash: flashes, Events: events}
	if cache != nil {
		base.Cache = cache
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())

	var pageMW []echo.MiddlewareFunc
	if cfg.CSRFEnabled {
		pageMW = append(pageMW, middleware.CSRF(cfg.CSRFSecret, cfg.CSRFTTL))
	}
	router.RegisterRoutes(e, handler.Health(db))
	router.RegisterPages(e, router.Pages{
		Base:    base,
		Venues:  &handler.VenueHandler{Base: base, Venues: venues},
		Artists: &handler.ArtistHandler{Base: base, Artists: artists},
		Shows:   &handler.ShowHandler{Base: base, Shows: shows, Venues: venues, Artists: artists},
	}, pageMW, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterAPI(e, &handler.APIHandler{Venues: venues, Artists: artists, Shows: shows}, cache.Middleware())

	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
