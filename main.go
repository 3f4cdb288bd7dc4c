package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"microloan/auth"
	"microloan/config"
	httpLayer "microloan/http"
	"microloan/repository"
	"microloan/scheduler"
	"microloan/service"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation", zap.Error(err))
	}

	store, err := repository.NewStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer store.Close()

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr)
		defer redisCache.Close()
		cache = redisCache
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		cache = repository.NewMockCache()
		log.Info("redis not configured, using in-memory cache")
	}

	userRepo := repository.NewSQLiteUserRepository(store)
	loanRepo := repository.NewSQLiteLoanRepository(store)
	documentRepo := repository.NewSQLiteDocumentRepository(store)
	installmentRepo := repository.NewSQLiteInstallmentRepository(store)

	tokens := auth.NewTokens(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	rules := service.LoanRules{
		MinAmount: cfg.Loan.MinAmount,
		MaxAmount: cfg.Loan.MaxAmount,
		MinCibil:  cfg.Loan.MinCibil,
		Tenures:   cfg.Loan.Tenures,
	}

	quoteService := service.NewQuoteService()
	documentStore := service.NewDocumentStore(cfg.Uploads.Dir, documentRepo)
	userService := service.NewUserService(userRepo, tokens, log)
	loanService := service.NewLoanService(loanRepo, installmentRepo, userRepo, documentStore, cache, quoteService, rules, log)
	adminService := service.NewAdminService(userRepo, loanService, userService, log)

	rateLimiter := httpLayer.NewRateLimiter(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.PerMinute)*time.Minute,
		log,
	)
	defer rateLimiter.Stop()

	mux := httpLayer.NewMux(httpLayer.Handlers{
		Quotes:  quoteService,
		Users:   userService,
		Loans:   loanService,
		Admin:   adminService,
		Tokens:  tokens,
		Limiter: rateLimiter,
	})

	sched := scheduler.New(loanService, log)
	if err := sched.Register(cfg.Schedule.OverdueCron); err != nil {
		log.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("api listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
		return
	case <-quit:
		log.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
