package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/config"
	"github.com/grimwiz/karakeep/internal/htmlmd"
	"github.com/grimwiz/karakeep/internal/httpserver"
	"github.com/grimwiz/karakeep/internal/httpserver/deps"
	"github.com/grimwiz/karakeep/internal/karakeep"
	"github.com/grimwiz/karakeep/internal/logger"
	"github.com/grimwiz/karakeep/internal/mcpserver"
	"github.com/grimwiz/karakeep/internal/redis"
	"github.com/grimwiz/karakeep/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	mcpServer   *mcpserver.Server
	httpServer  *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	client := karakeep.NewClient(karakeep.ClientOptions{
		APIAddr:   cfg.APIAddr,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	}, loggerClient)

	svc := bookmarks.NewService(client, htmlmd.Convert, loggerClient, cfg.SearchLimit)

	a := &App{
		cfg:    cfg,
		logger: loggerClient,
	}

	if cfg.Transport == config.TransportStdio || cfg.Transport == config.TransportBoth {
		a.mcpServer = mcpserver.New(svc, version.Version, loggerClient)
	}

	if cfg.Transport == config.TransportHTTP || cfg.Transport == config.TransportBoth {
		// Redis is optional; without it the rate limiter falls back to
		// per-instance token buckets.
		var redisClient *goredis.Client
		if cfg.RedisAddr != "" {
			var err error
			redisClient, err = redis.New(redis.ConnectOptions{
				Addr:           cfg.RedisAddr,
				User:           cfg.RedisUser,
				Password:       cfg.RedisPassword,
				DB:             cfg.RedisDB,
				DialTimeout:    cfg.RedisDT,
				ReadTimeout:    cfg.RedisRT,
				WriteTimeout:   cfg.RedisWT,
				PoolSize:       cfg.RedisPoolSize,
				ConnectTimeout: cfg.RedisConnectTimeout,
				RetryInterval:  cfg.RedisRetryInterval,
				MaxWait:        cfg.RedisMaxWait,
				PingTimeout:    cfg.RedisPingTimeout,
			}, loggerClient)
			if err != nil {
				loggerClient.Errorf("Failed to connect to Redis: %v", err)
				os.Exit(1)
			}
		}

		d := deps.Deps{
			Logger:      loggerClient,
			StartTime:   time.Now(),
			Version:     version.Version,
			Commit:      version.Commit,
			BuildDate:   version.BuildDate,
			GoVersion:   version.GoVersion,
			Service:     svc,
			SearchLimit: cfg.HTTPSearchLimit,
			RedisClient: redisClient,
			RateBurst:   cfg.RateBurst,
			RatePerMin:  cfg.RatePerMin,
		}

		a.httpServer = httpserver.New(cfg, loggerClient, d)
		a.redisClient = redisClient
	}

	return a
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting karakeep v%s (transport=%s)", version.Version, a.cfg.Transport)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	if a.httpServer != nil {
		go func() {
			if err := a.httpServer.Start(); err != nil {
				errCh <- fmt.Errorf("http server error: %w", err)
			}
		}()
	}

	if a.mcpServer != nil {
		go func() {
			if err := a.mcpServer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("mcp server error: %w", err)
				return
			}
			// Stdin closed: the MCP client is gone, shut the process down.
			errCh <- nil
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		if err != nil {
			runErr = err
		}
	}

	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.httpServer.Stop(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("failed to stop server: %w", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ karakeep stopped cleanly")
	return nil
}
