package app

import (
	"github.com/nfrund/aprovados/internal/config"
	"github.com/nfrund/aprovados/internal/form"
	"github.com/nfrund/aprovados/internal/module"
	"github.com/nfrund/aprovados/internal/modules/aprovados"
	"github.com/nfrund/aprovados/internal/pubsub"
	"github.com/nfrund/aprovados/internal/storage"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Config     config.Provider
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Submitter  form.Submitter
	Photos     storage.Store
}

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		aprovados.New(aprovadosDeps(deps)),
	}
}

func aprovadosDeps(deps Dependencies) aprovados.Dependencies {
	return aprovados.Dependencies{
		Config:     deps.Config,
		Submitter:  deps.Submitter,
		Photos:     deps.Photos,
		Publisher:  deps.Publisher,
		Subscriber: deps.Subscriber,
	}
}
