package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/submitd/internal/config"
	"github.com/dmitrymomot/submitd/internal/handler"
	"github.com/dmitrymomot/submitd/internal/queue"
	"github.com/dmitrymomot/submitd/internal/render"
	"github.com/dmitrymomot/submitd/internal/submission"
	"github.com/dmitrymomot/submitd/pkg/email"
	"github.com/dmitrymomot/submitd/pkg/httpserver"
	"github.com/dmitrymomot/submitd/pkg/logger"
	"github.com/dmitrymomot/submitd/pkg/mongo"
)

type appConfig struct {
	Log      logger.Config
	HTTP     httpserver.Config
	Mongo    mongo.Config
	Email    email.Config
	Queue    queue.Config
	Render   render.Config
	Pipeline submission.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Log, logger.WithAttr(slog.String("service", "submitd")))
	logger.SetAsDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("service stopped")
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	db, err := mongo.NewDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	store := submission.NewMongoStore(db, cfg.Pipeline.Collection)

	renderer, err := render.New(cfg.Render)
	if err != nil {
		return err
	}

	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		return err
	}

	q := queue.NewFromConfig(cfg.Queue, queue.WithLogger(log))

	pipeline, err := submission.NewPipeline(cfg.Pipeline, store, renderer, sender, q,
		submission.WithLogger(log))
	if err != nil {
		return err
	}

	name, deliver := pipeline.TaskHandler()
	if err := q.RegisterHandler(queue.NewTaskHandler(name, deliver)); err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	router := handler.Router(pipeline, log, mongo.Healthcheck(db.Client()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(q.Run(ctx))
	g.Go(func() error { return srv.Run(ctx, router) })

	return g.Wait()
}
