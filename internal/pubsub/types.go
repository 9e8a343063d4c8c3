package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub. It is
// carried in the "event" message attribute.
type EventType string

const (
	EventMatchCreated EventType = "match-created"
	EventMatchUpdated EventType = "match-updated"
	EventMatchDeleted EventType = "match-deleted"
)

// AttrEvent is the message attribute holding the EventType.
const AttrEvent = "event"
