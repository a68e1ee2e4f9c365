package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/starterkit/handler"
	"github.com/dmitrymomot/starterkit/modules/home"
	"github.com/dmitrymomot/starterkit/pkg/backend"
	"github.com/dmitrymomot/starterkit/pkg/clientip"
	"github.com/dmitrymomot/starterkit/pkg/config"
	"github.com/dmitrymomot/starterkit/pkg/errreport"
	"github.com/dmitrymomot/starterkit/pkg/httpserver"
	"github.com/dmitrymomot/starterkit/pkg/logger"
	"github.com/dmitrymomot/starterkit/pkg/pg"
	"github.com/dmitrymomot/starterkit/pkg/redis"
	"github.com/dmitrymomot/starterkit/pkg/requestid"
	"github.com/dmitrymomot/starterkit/pkg/toast"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		errLogCfg  errorLogConfig
		httpCfg    httpserver.Config
		homeCfg    home.Config
		backendCfg backend.Config
		pgCfg      pg.Config
		redisCfg   redis.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&errLogCfg),
		config.Load(&httpCfg),
		config.Load(&homeCfg),
		config.Load(&backendCfg),
		config.Load(&pgCfg),
		config.Load(&redisCfg),
	); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithLevelName(appCfg.LogLevel),
		logger.WithContextExtractors(requestid.Extractor, clientip.Extractor),
	)
	logger.SetAsDefault(log)

	var readiness []func(context.Context) error

	var pool *pgxpool.Pool
	if pgCfg.ConnectionString != "" {
		p, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer p.Close()
		pool = p
		readiness = append(readiness, pg.Healthcheck(p))
	}

	sinks := errreport.MultiSink{errreport.NewMemorySink(errLogCfg.MemoryCapacity)}
	if redisCfg.ConnectionURL != "" {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func(c *goredis.Client) { _ = c.Close() }(client)
		sinks = append(sinks, errreport.NewRedisSink(client, errLogCfg.Key, errLogCfg.Max))
		readiness = append(readiness, redis.Healthcheck(client))
	}

	reporter := errreport.New(
		errreport.WithLogger(log),
		errreport.WithSink(sinks),
		errreport.WithMessageMapper(backend.FriendlyMessage),
	)

	db, err := backend.NewFromConfig(backendCfg, pool, log)
	if err != nil {
		return err
	}

	emitter := toast.New(
		toast.WithDuration(homeCfg.ToastDuration),
		toast.WithLimit(homeCfg.ToastLimit),
		toast.WithLogger(log),
	)
	defer emitter.Close()

	scheduler := home.NewScheduler(homeCfg.QueueSize, log)
	ctl := home.NewController(homeCfg, reporter, emitter, db, scheduler, home.WithLogger(log))
	defer ctl.Close()

	views := home.DefaultViews()
	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  views.ErrorPage,
		ErrorToast: views.ErrorToast,
		Notify:     home.NotifyErrors(emitter),
	})
	svc := home.NewService(ctl, emitter, errorHandler,
		home.WithViews(views),
		home.WithAppName(appCfg.Name),
		home.WithServiceLogger(log),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware)
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, readiness...))
	r.Mount("/", svc.Handle())

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		return server.Run(gctx, r)
	})
	g.Go(func() error {
		// Open SSE streams end when state subscriptions close.
		<-gctx.Done()
		ctl.Close()
		return nil
	})

	log.InfoContext(ctx, "starting",
		slog.String("env", appCfg.Env),
		slog.String("backend_driver", backendCfg.Driver),
		slog.Bool("postgres", pool != nil),
		slog.Bool("redis", len(sinks) > 1),
	)
	return g.Wait()
}
