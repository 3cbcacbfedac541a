package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/aprovados/internal/module"
	"github.com/nfrund/aprovados/internal/registry"
)

// InitModules registers every module, then boots them on the root group.
// Registration completes for all modules before any of them boots, so Boot
// may look up services another module registered.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	root := s.E.Group("")
	for _, m := range modules {
		if err := m.Boot(ctx, root, reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		s.modules = append(s.modules, m)
		slog.Info("Module booted", "module", m.Name())
	}
	return nil
}

// shutdownModules stops the booted modules in reverse order.
func (s *Server) shutdownModules(ctx context.Context) {
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
		}
	}
	s.modules = nil
}
