package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"github.com/dmitrijs2005/ontrail/internal/buildinfo"
	"github.com/dmitrijs2005/ontrail/internal/client/api"
	"github.com/dmitrijs2005/ontrail/internal/client/cli"
	"github.com/dmitrijs2005/ontrail/internal/client/config"
	"github.com/dmitrijs2005/ontrail/internal/client/kvstore"
	"github.com/dmitrijs2005/ontrail/internal/filex"
	"github.com/dmitrijs2005/ontrail/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer closeStore()

	backend := api.New(cfg.Host, store,
		api.WithHTTPClient(&http.Client{}),
		api.WithLogger(logger),
		api.WithDebug(cfg.Debug),
	)

	logger.Debug(ctx, "starting", "host", cfg.Host, "store", cfg.StoreDriver)

	app := cli.NewApp(backend, logger, os.Stdin, os.Stdout, cfg.RequestTimeout)
	app.Run(ctx)

}

func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return kvstore.NewMemory(), func() {}, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			MaintNotificationsConfig: &maintnotifications.Config{
				Mode: maintnotifications.ModeDisabled,
			},
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect to redis %s: %w", cfg.RedisAddr, err)
		}
		return kvstore.NewRedis(rdb, cfg.RedisPrefix), func() { _ = rdb.Close() }, nil

	default:
		if _, err := filex.EnsureParentDir(cfg.StorePath); err != nil {
			return nil, nil, err
		}
		store, db, err := kvstore.OpenSQLite(ctx, cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store %s: %w", cfg.StorePath, err)
		}
		return store, func() { _ = db.Close() }, nil
	}
}
