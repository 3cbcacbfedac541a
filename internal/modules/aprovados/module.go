// Package aprovados is the registration form feature: the page, its htmx
// endpoints and the background upkeep of open drafts.
package aprovados

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/aprovados/internal/config"
	"github.com/nfrund/aprovados/internal/domain"
	"github.com/nfrund/aprovados/internal/form"
	"github.com/nfrund/aprovados/internal/middleware"
	"github.com/nfrund/aprovados/internal/module"
	"github.com/nfrund/aprovados/internal/pubsub"
	"github.com/nfrund/aprovados/internal/registry"
	"github.com/nfrund/aprovados/internal/storage"
)

// Dependencies holds the services the module needs.
type Dependencies struct {
	Config     config.Provider
	Submitter  form.Submitter
	Photos     storage.Store
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
}

// Module wires the registration form into the application.
type Module struct {
	module.BaseModule
	deps    Dependencies
	forms   *form.Registry
	handler *Handler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates the module.
func New(deps Dependencies) *Module {
	return &Module{deps: deps}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "aprovados"
}

// Register opens the draft registry and shares it with other modules.
func (m *Module) Register(reg *registry.Registry) error {
	cfg := m.deps.Config
	m.forms = form.NewRegistry(form.Dependencies{
		Submitter:  m.deps.Submitter,
		Photos:     m.deps.Photos,
		Publisher:  m.deps.Publisher,
		Policy:     domain.NewPhotoPolicy(cfg.GetPhotoMaxBytes(), cfg.GetPhotoAllowedTypes()),
		ResetDelay: cfg.GetResetDelay(),
	})
	registry.Set(reg, registry.FormRegistryKey, m.forms)

	slog.Info("Aprovados module registered")
	return nil
}

// Boot mounts the routes and starts the event log and the draft pruner.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	cfg := m.deps.Config
	m.handler = NewHandler(m.forms, cfg.GetPhotoMaxBytes(), cfg.GetPhotoAllowedTypes(), cfg.GetSubmitTimeout())

	uploadLimit := echomw.BodyLimit(strconv.FormatInt(uploadBodyLimit(cfg.GetPhotoMaxBytes()), 10))

	g.GET("/", m.handler.Page)

	f := g.Group("/form")
	f.POST("/telefone", m.handler.SetTelefone)
	f.POST("/concursos", m.handler.AddConcurso)
	f.PUT("/concursos/:index", m.handler.UpdateConcurso)
	f.DELETE("/concursos/:index", m.handler.RemoveConcurso)
	f.POST("/imagem", m.handler.UploadPhoto, uploadLimit)
	f.DELETE("/imagem", m.handler.RemovePhoto)
	f.GET("/imagem/preview", m.handler.PreviewPhoto)
	f.POST("/submit", m.handler.Submit, middleware.RateLimiter(), uploadLimit)
	f.GET("/status", m.handler.Status)
	f.POST("/:field", m.handler.SetField)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel

	if m.deps.Subscriber != nil {
		for _, topic := range pubsub.SubmissionTopics {
			if err := m.deps.Subscriber.Subscribe(runCtx, topic, logEvent); err != nil {
				cancel()
				return err
			}
		}
	}

	if maxIdle := cfg.GetDraftMaxIdle(); maxIdle > 0 {
		m.wg.Add(1)
		go m.prune(runCtx, maxIdle)
	}

	slog.Info("Aprovados module booted")
	return nil
}

// Shutdown stops the background work and pending draft resets.
func (m *Module) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down aprovados module...")
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	if m.forms != nil {
		m.forms.Close()
	}
	return nil
}

func (m *Module) prune(ctx context.Context, maxIdle time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(pruneInterval(maxIdle))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.forms.Prune(ctx, maxIdle); n > 0 {
				slog.Info("Pruned idle drafts", "count", n, "open", m.forms.Len())
			}
		}
	}
}

// pruneInterval checks twice per idle window, but no more than once a minute.
func pruneInterval(maxIdle time.Duration) time.Duration {
	return max(maxIdle/2, time.Minute)
}

// uploadBodyLimit is the largest request accepted on the photo routes. It is
// above the photo limit so oversized files reach the policy check.
func uploadBodyLimit(maxPhotoBytes int64) int64 {
	return 2*maxPhotoBytes + 1<<20
}

func logEvent(ctx context.Context, msg pubsub.Message) error {
	ev, err := pubsub.DecodeEvent(msg)
	if err != nil {
		slog.Warn("Undecodable submission event", "topic", msg.Topic, "error", err)
		return nil
	}
	attrs := []any{"topic", msg.Topic, "draft_id", ev.DraftID}
	if ev.Error != "" {
		slog.Warn("Submission event", append(attrs, "error", ev.Error)...)
		return nil
	}
	slog.Info("Submission event", append(attrs, "concursos", ev.Concursos, "has_photo", ev.HasPhoto)...)
	return nil
}
