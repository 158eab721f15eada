package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/blazern/recipe-calculator-server-sub000/internal/api"
	"github.com/blazern/recipe-calculator-server-sub000/internal/api/middleware"
	"github.com/blazern/recipe-calculator-server-sub000/internal/config"
	"github.com/blazern/recipe-calculator-server-sub000/internal/identity"
	"github.com/blazern/recipe-calculator-server-sub000/internal/notify"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pairing"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/database"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
	"github.com/blazern/recipe-calculator-server-sub000/internal/repository"
	"github.com/blazern/recipe-calculator-server-sub000/internal/server"
	"github.com/blazern/recipe-calculator-server-sub000/internal/service"
	"github.com/blazern/recipe-calculator-server-sub000/internal/worker"
)

// Build-time variables
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting pairing service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	pool, err := database.NewPool(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.HealthCheck(context.Background(), pool); err != nil {
		log.Fatal("Database health check failed", zap.Error(err))
	}
	log.Info("Database connection established")

	poolMonitorCtx, poolMonitorCancel := context.WithCancel(context.Background())
	go database.StartPoolMonitor(poolMonitorCtx, pool, log, 30*time.Second)

	repos := repository.NewRepositoryContainer(pool)
	log.Info("Repositories initialized")

	allocator, err := pairing.New(
		cfg.Pairing.Family,
		cfg.Pairing.CodeRangeLeft,
		cfg.Pairing.CodeRangeRight,
		cfg.Pairing.CodeLifeSecs,
		log,
	)
	if err != nil {
		log.Fatal("Failed to construct pairing code allocator", zap.Error(err))
	}
	defer allocator.Close()

	issuer := identity.NewClientTokenIssuer(cfg.Identity.ClientTokenSecret, cfg.Identity.ClientTokenTTL)
	pushSender := notify.NewLoggingPushSender(log)

	services := &api.ServiceContainer{
		Users:          service.NewUserService(repos, identity.StaticVerifier{}, issuer, log),
		Pairing:        service.NewPairingService(repos, allocator, repos.PairingConn, pushSender, cfg.Pairing.Family, log),
		DirectMessages: service.NewDirectMessageService(repos, pushSender, log),
	}
	log.Info("Services initialized")

	router := api.NewRouter(api.RouterConfig{
		Logger:     log,
		Pool:       pool,
		Services:   services,
		Version:    Version,
		BuildTime:  BuildTime,
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	router.Handle("/metrics", promhttp.Handler())

	workerManager := worker.NewManager()
	pairingExpiryWorker := worker.NewPairingExpiryWorker(
		services.Pairing,
		worker.PairingExpiryWorkerConfig{
			Interval:  cfg.Worker.PairingExpiryInterval,
			BatchSize: cfg.Worker.PairingExpiryBatchSize,
		},
		log,
	)
	workerManager.Register(pairingExpiryWorker)
	log.Info("Workers initialized")

	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil {
		log.Fatal("Invalid server port", zap.String("port", cfg.Server.Port), zap.Error(err))
	}

	serverConfig := server.Config{
		Host:            cfg.Server.Host,
		Port:            port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	srv := server.New(router, log, serverConfig)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerManager.StartAll(workerCtx)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Received shutdown signal")

	workerCancel()
	workerManager.StopAll()
	log.Info("Workers stopped")

	poolMonitorCancel()
	log.Info("Pool monitor stopped")

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Service stopped")
}
