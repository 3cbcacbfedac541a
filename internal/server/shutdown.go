package server

import (
	"context"
	"log/slog"
)

// Shutdown stops accepting requests, then stops the modules and the bus.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.E.Shutdown(ctx)
	s.shutdownModules(ctx)
	if s.Publisher != nil {
		if cerr := s.Publisher.Close(); cerr != nil {
			slog.Error("Failed to close publisher", "error", cerr)
		}
	}
	return err
}
