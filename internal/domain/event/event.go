// Package event defines the change-notification message shape and the
// fire-and-forget bus port.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the wire schema version stamped on every message.
const SchemaVersion = "1"

// Source identifies this service as the origin of emitted messages.
const Source = "catalog-service"

// Methods describing what happened to the entity.
const (
	MethodCreate        = "create"
	MethodUpdate        = "update"
	MethodDelete        = "delete"
	MethodImagesUpdated = "images_updated"
)

// Message is an ephemeral change notification. It is never persisted; it
// exists only on the wire and carries no delivery or ordering guarantee.
type Message struct {
	ID        string                 `json:"id"`
	Version   string                 `json:"version"`
	Type      string                 `json:"type"`
	Method    string                 `json:"method"`
	Source    string                 `json:"source"`
	Entity    string                 `json:"entity"`
	EntityID  int64                  `json:"entity_id"`
	EmittedAt time.Time              `json:"emitted_at"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// NewMessage builds a message for the given entity and method.
func NewMessage(source, entity, method string, entityID int64, payload map[string]interface{}) Message {
	return Message{
		ID:        uuid.New().String(),
		Version:   SchemaVersion,
		Type:      "catalog." + entity,
		Method:    method,
		Source:    source,
		Entity:    entity,
		EntityID:  entityID,
		EmittedAt: time.Now().UTC(),
		Payload:   payload,
	}
}

// Bus publishes messages to subscribers outside the process. Both methods
// return immediately; delivery happens in the background and any failure is
// logged, never propagated. A failed publish must never fail the request that
// triggered it — the relational transaction has already committed.
type Bus interface {
	Publish(ctx context.Context, msg Message)
	PublishMany(ctx context.Context, msgs []Message)
}
