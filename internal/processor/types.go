package processor

import (
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/pubsub"
	"github.com/mauv0809/role-ladder/internal/timestamp"
)

// Processor handles the business logic of match mutations.
type Processor struct {
	store      Store
	audit      Auditor
	notifier   Notifier
	pubsub     pubsub.PubSubClient
	metrics    metrics.Metrics
	normalizer *timestamp.Normalizer
}

// Actor is the admin performing a request. A zero ID means the request
// carried no admin identity, so no audit entry is written.
type Actor struct {
	ID   int64
	Name string
}
