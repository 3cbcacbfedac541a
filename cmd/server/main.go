package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/nfrund/aprovados/internal/app"
	"github.com/nfrund/aprovados/internal/config"
	"github.com/nfrund/aprovados/internal/form"
	"github.com/nfrund/aprovados/internal/logging"
	"github.com/nfrund/aprovados/internal/pubsub"
	"github.com/nfrund/aprovados/internal/registry"
	"github.com/nfrund/aprovados/internal/rendering"
	"github.com/nfrund/aprovados/internal/server"
	"github.com/nfrund/aprovados/internal/storage"
	"github.com/nfrund/aprovados/internal/submission"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New()

	reg := registry.New(cfg)

	bus := pubsub.NewWatermillBridge()
	registry.Set(reg, registry.PublisherKey, pubsub.Publisher(bus))
	registry.Set(reg, registry.SubscriberKey, pubsub.Subscriber(bus))

	photos, err := storage.New(cfg.GetPhotoStagingDir())
	if err != nil {
		return fmt.Errorf("open photo staging: %w", err)
	}
	registry.Set(reg, registry.PhotoStoreKey, storage.Store(photos))

	client := submission.NewClient(cfg.GetEndpoint(), &http.Client{Timeout: cfg.GetSubmitTimeout()}, submission.WithLogger(logger))
	registry.Set(reg, registry.SubmitterKey, form.Submitter(client))

	s, err := server.New(server.Dependencies{
		Config:    cfg,
		Renderer:  rendering.NewUniversalRenderer(),
		Publisher: bus,
	})
	if err != nil {
		return err
	}

	modules := app.NewModules(app.Dependencies{
		Config:     cfg,
		Publisher:  registry.MustGet(reg, registry.PublisherKey),
		Subscriber: registry.MustGet(reg, registry.SubscriberKey),
		Submitter:  registry.MustGet(reg, registry.SubmitterKey),
		Photos:     registry.MustGet(reg, registry.PhotoStoreKey),
	})
	if err := s.InitModules(context.Background(), modules, reg); err != nil {
		return err
	}
	s.RegisterRoutes()

	slog.Info("Submitting registrations to", "endpoint", client.Endpoint())
	return s.Start()
}
