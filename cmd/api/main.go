package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realtor-api/internal/config"
	"realtor-api/internal/db"
	"realtor-api/internal/email"
	apihttp "realtor-api/internal/http"
	"realtor-api/internal/repository"
	"realtor-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	homeRepo := repository.NewPgHomeRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)

	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	tokenCodec, err := service.NewTokenCodec(cfg.JWTSecret)
	if err != nil {
		logger.Fatal("token codec", zap.Error(err))
	}
	productKeys, err := service.NewProductKeyService(hasher, cfg.ProductKeySecret)
	if err != nil {
		logger.Fatal("product key service", zap.Error(err))
	}

	var keySender email.Sender
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			keySender = sender
		}
	}

	var searchCache service.HomeSearchCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, search cache disabled", zap.Error(err))
		} else {
			searchCache = service.NewRedisHomeSearchCache(redisClient, time.Duration(cfg.HomeCacheTTLSecs)*time.Second, logger)
		}
		cancel()
	}

	authSvc := service.NewAuthService(logger, userRepo, hasher, tokenCodec, productKeys, keySender)
	homeSvc := service.NewHomeService(logger, homeRepo, messageRepo, searchCache)
	authorizer := service.NewRoleAuthorizer(tokenCodec, userRepo)

	router := apihttp.NewRouter(
		logger,
		tokenCodec,
		authorizer,
		pool,
		apihttp.NewAuthHandler(logger, authSvc),
		apihttp.NewHomeHandler(logger, homeSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
