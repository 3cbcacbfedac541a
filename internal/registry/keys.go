package registry

import (
	"github.com/nfrund/aprovados/internal/form"
	"github.com/nfrund/aprovados/internal/pubsub"
	"github.com/nfrund/aprovados/internal/storage"
)

// Service keys shared between modules. Using constants prevents typos.
const (
	FormRegistryKey Key[*form.Registry]    = "aprovados.forms"
	SubmitterKey    Key[form.Submitter]    = "aprovados.submitter"
	PhotoStoreKey   Key[storage.Store]     = "aprovados.photos"
	PublisherKey    Key[pubsub.Publisher]  = "pubsub.publisher"
	SubscriberKey   Key[pubsub.Subscriber] = "pubsub.subscriber"
)
