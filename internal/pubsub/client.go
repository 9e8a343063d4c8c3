package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub and publishes every event to topicID.
func New(ctx context.Context, projectID, topicID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &client{
		client: pubSubC,
		topic:  pubSubC.Topic(topicID),
	}, nil
}

// SendMessage encodes data with MessagePack and waits for the server ack.
func (c *client) SendMessage(ctx context.Context, eventType EventType, data any) error {
	msgpackData, err := Encode(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{AttrEvent: string(eventType)},
	}
	result := c.topic.Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", c.topic.ID(), "event", eventType)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "event", eventType)
	return nil
}

// Close flushes pending publishes and closes the connection.
func (c *client) Close() error {
	c.topic.Stop()
	return c.client.Close()
}

// Encode is the wire encoding of every event payload.
func Encode(data any) ([]byte, error) {
	return msgpack.Marshal(data)
}

// Decode unmarshals a payload produced by Encode into returnValue.
func Decode(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
