package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpctx "github.com/dtroode/dokugo-server/internal/api/http/context"
	"github.com/dtroode/dokugo-server/internal/api/http/handler"
	"github.com/dtroode/dokugo-server/internal/api/http/router"
	httpServer "github.com/dtroode/dokugo-server/internal/api/http/server"
	"github.com/dtroode/dokugo-server/internal/cache/memory"
	"github.com/dtroode/dokugo-server/internal/cache/redis"
	"github.com/dtroode/dokugo-server/internal/config"
	"github.com/dtroode/dokugo-server/internal/logger"
	"github.com/dtroode/dokugo-server/internal/mailer"
	"github.com/dtroode/dokugo-server/internal/model"
	"github.com/dtroode/dokugo-server/internal/password"
	"github.com/dtroode/dokugo-server/internal/repository/postgres"
	"github.com/dtroode/dokugo-server/internal/server"
	"github.com/dtroode/dokugo-server/internal/service"
	storage "github.com/dtroode/dokugo-server/internal/storage/minio"
	"github.com/dtroode/dokugo-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	revokedTokenRepo := postgres.NewRevokedTokenRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	checks := map[string]handler.Pinger{"postgres": db}

	var wg sync.WaitGroup

	var otpCache model.OTPCache
	switch cfg.OTP.Backend {
	case config.OTPBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		redisCache := redis.NewOTPCache(client, "dokugo:otp")
		if err := redisCache.Ping(ctx); err != nil {
			logger.Fatal("failed to connect to redis", "error", err, "address", cfg.Redis.Addr)
		}
		checks["redis"] = redisCache
		otpCache = redisCache
	default:
		memoryCache := memory.NewOTPCache()
		go memoryCache.Start()
		defer memoryCache.Stop()
		otpCache = memoryCache
	}

	receiptStore, err := storage.NewReceiptStore(ctx, storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize receipt storage", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	tokenService := service.NewTokenService(tokenManager, revokedTokenRepo, logger)
	validator := service.NewValidator()
	smtp := mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	authService := service.NewAuth(
		userRepo,
		otpCache,
		smtp,
		password.NewBcrypt(cfg.BcryptCost),
		tokenService,
		validator,
		service.AuthOptions{
			OTPTTL:          cfg.OTP.TTL,
			DefaultPhotoURL: service.DefaultPhotoURL(cfg.AvatarBaseURL),
		},
		logger,
	)
	profileService := service.NewProfile(userRepo, transactionRepo, receiptStore, otpCache, validator, cfg.AvatarBaseURL, logger)
	transactionService := service.NewTransaction(transactionRepo, receiptStore, validator, logger)

	sweeper := service.NewSweeper(revokedTokenRepo, cfg.RevocationSweepInterval, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	r := router.New(authService, profileService, transactionService, tokenService, httpctx.NewManager(), checks, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), httpServer.Options{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		tlsListener, err := server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
		if err != nil {
			logger.Fatal("failed to set up TLS", "error", err)
		}
		sl = tlsListener
	} else {
		sl = server.NewPlainListener()
	}

	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
