package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/rl1809/luxestore/internal/adapter/handler"
	"github.com/rl1809/luxestore/internal/adapter/notify"
	"github.com/rl1809/luxestore/internal/adapter/storage"
	"github.com/rl1809/luxestore/internal/config"
	"github.com/rl1809/luxestore/internal/core/service"
	"github.com/rl1809/luxestore/internal/logger"
	"github.com/rl1809/luxestore/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logg := logger.New(logger.Options{
		Service: "luxestore",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	// Catalog database
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	logg.Info("connected to mysql")

	catalogDB := storage.NewMySQLCatalog(db)
	if err := catalogDB.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run catalog migrations: %v", err)
	}
	logg.Info("catalog migrations completed")

	// Document store
	var rdb *redis.Client
	var store port.KeyValueStore
	var catalog port.Catalog = catalogDB

	switch cfg.StoreBackend {
	case "redis":
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		logg.Info("connected to redis")
		store = storage.NewRedisStore(rdb)
		catalog = storage.NewCachedCatalog(catalogDB, rdb)
	case "file":
		fileStore, err := storage.NewFileStore(cfg.StoreDir)
		if err != nil {
			log.Fatalf("failed to open file store: %v", err)
		}
		store = fileStore
	default:
		log.Fatalf("unknown store backend %q", cfg.StoreBackend)
	}

	// Core services
	notifier := notify.NewSlogNotifier(logg)
	users := service.NewUserService(ctx, store, notifier, notifier)
	cart := service.NewCartService(ctx, store, catalog, notifier)
	wishlist := service.NewWishlistService(ctx, store, catalog, notifier)
	browse := service.NewBrowseService(ctx, store, catalog, notifier)
	service.NewSyncCoordinator(users, cart, wishlist)

	if user := users.RestoreSession(ctx); user != nil {
		logg.Info("session restored", "user", user.Email)
	}

	// gRPC server: health + reflection for orchestration
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		logg.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logg.Error("gRPC server error", "err", err)
		}
	}()

	// HTTP server
	api := handler.NewHTTPHandler(users, cart, wishlist, browse)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Routes(),
	}

	go func() {
		logg.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logg.Error("HTTP server error", "err", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logg.Info("HTTP server stopped")

	healthServer.Shutdown()
	grpcServer.GracefulStop()
	logg.Info("gRPC server stopped")

	if rdb != nil {
		rdb.Close()
	}
	db.Close()
	logg.Info("connections closed")
}
