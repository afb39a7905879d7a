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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	httpcontext "github.com/dtroode/codepad-server/internal/api/http/context"
	"github.com/dtroode/codepad-server/internal/api/http/cookie"
	"github.com/dtroode/codepad-server/internal/api/http/handler"
	"github.com/dtroode/codepad-server/internal/api/http/middleware"
	"github.com/dtroode/codepad-server/internal/api/http/router"
	httpServer "github.com/dtroode/codepad-server/internal/api/http/server"
	"github.com/dtroode/codepad-server/internal/api/http/view"
	"github.com/dtroode/codepad-server/internal/auth"
	"github.com/dtroode/codepad-server/internal/config"
	"github.com/dtroode/codepad-server/internal/federation"
	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/mail"
	"github.com/dtroode/codepad-server/internal/metrics"
	"github.com/dtroode/codepad-server/internal/model"
	"github.com/dtroode/codepad-server/internal/repository/postgres"
	"github.com/dtroode/codepad-server/internal/server"
	"github.com/dtroode/codepad-server/internal/service"
	"github.com/dtroode/codepad-server/internal/storage/memory"
	redisstore "github.com/dtroode/codepad-server/internal/storage/redis"
	"github.com/dtroode/codepad-server/internal/token"
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
	if cfg.Session.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET is not set, session cookies are signed with the development default")
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN, postgres.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(reg)

	challengeStore, closeChallenges := newChallengeStore(ctx, cfg, logger)
	defer closeChallenges()

	userRepo := postgres.NewUserRepository(db)
	snippetRepo := postgres.NewSnippetRepository(db)
	hasher := auth.NewArgon2id(auth.DefaultArgon2Params)
	sessions := token.NewJWT(cfg.Session.Secret, cfg.Session.TTL)

	provider, err := newIdentityProvider(cfg)
	if err != nil {
		logger.Fatal("failed to configure identity provider", "error", err)
	}
	if provider == nil {
		logger.Info("federated sign-in disabled, GOOGLE_CLIENT_ID is not set")
	}

	otpService := service.NewOTP(challengeStore, userRepo, newMailer(cfg, logger), cfg.OTP.TTL, logger, appMetrics)
	authService := service.NewAuth(userRepo, otpService, hasher, provider, logger, appMetrics)
	editorService := service.NewEditor(snippetRepo, logger, appMetrics)
	sweeper := service.NewSweeper(snippetRepo, service.RetentionPolicy{
		Interval:     cfg.Retention.Interval,
		AnonymousTTL: cfg.Retention.AnonymousTTL,
		OwnedTTL:     cfg.Retention.OwnedTTL,
	}, logger.With("component", "sweeper"), appMetrics)

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", "error", err)
	}
	ctxMgr := httpcontext.NewManager()
	jar := cookie.NewJar(sessions, cfg.HTTP.SecureCookies)

	r := router.New(
		handler.NewEditor(editorService, ctxMgr, renderer, logger),
		handler.NewAuth(authService, otpService, ctxMgr, jar, renderer, logger, provider != nil),
		middleware.NewSession(jar, authService, ctxMgr, logger),
		db,
		reg,
		appMetrics,
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	if err := sweeper.Start(ctx); err != nil {
		logger.Fatal("failed to start retention sweeper", "error", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
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
	if err := sweeper.Stop(shutdownCtx); err != nil {
		logger.Error("error during sweeper shutdown", "error", err)
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

// newChallengeStore returns the configured OTP challenge store and a function releasing it.
func newChallengeStore(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.ChallengeStore, func()) {
	switch cfg.Challenge.Store {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := redisstore.NewChallengeStore(client, "codepad")
		if err := store.Ping(ctx); err != nil {
			logger.Fatal("failed to connect to redis", "error", err, "address", cfg.Redis.Addr)
		}
		return store, func() { _ = client.Close() }
	case "memory":
		store := memory.NewChallengeStore()
		return store, func() { _ = store.Close() }
	default:
		logger.Fatal("unknown challenge store", "store", cfg.Challenge.Store)
		return nil, nil
	}
}

func newMailer(cfg *config.Config, logger *logger.Logger) model.Mailer {
	if cfg.Mail.Provider == "sendgrid" {
		return mail.NewSendGrid(cfg.Mail.APIKey, cfg.Mail.SenderName, cfg.Mail.SenderEmail)
	}
	logger.Info("mail provider is log, verification codes are written to the log")
	return mail.NewLog(logger.With("component", "mail"))
}

// newIdentityProvider returns nil when Google sign-in is not configured.
func newIdentityProvider(cfg *config.Config) (model.IdentityProvider, error) {
	if cfg.Google.ClientID == "" {
		return nil, nil
	}

	provider, err := federation.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
