package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookworks/book-app/internal/api"
	"github.com/bookworks/book-app/internal/core/service"
	"github.com/bookworks/book-app/internal/infrastructure/config"
	mongodb "github.com/bookworks/book-app/internal/infrastructure/db/mongo"
	redisdb "github.com/bookworks/book-app/internal/infrastructure/db/redis"
	"github.com/bookworks/book-app/pkg/logger"
)

// @title        Book App API
// @version      1.0
// @description  Multi-role book-management backend: registration, login, and administration.
// @BasePath     /api/book-app
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	store := mongodb.NewPrincipalStore(db)
	bookRepo := mongodb.NewBookRepository(db)
	bookCache := redisdb.NewBookCache(rdb, log)

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(store, hasher, tokens, log)
	adminService := service.NewAdminService(store, log)
	bookService := service.NewBookService(bookRepo, store, bookCache, log)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(api.Services{
		Auth:  authService,
		Admin: adminService,
		Books: bookService,
	}, tokens, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
