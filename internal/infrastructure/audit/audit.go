// Package audit provides audit logging for catalog mutations: one immutable
// before/after snapshot per mutating command, written inside the same
// transaction as the mutation it documents.
package audit

import (
	"context"
	"encoding/json"
	"sort"
	"time"
)

// Action represents the type of audit action.
type Action string

// Action constants for audit logging.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// LogEntry represents an audit log entry. OldData is nil for creates,
// NewData is nil for deletes.
type LogEntry struct {
	ID          int64
	EntityName  string
	EntityID    int64
	Action      Action
	OldData     map[string]interface{}
	NewData     map[string]interface{}
	Changes     map[string]interface{}
	ActorID     string
	ActorName   string
	PerformedAt time.Time
}

// Logger defines the interface for audit logging. Log joins the transaction
// carried by the context, so an audit entry never outlives a rolled-back
// mutation.
type Logger interface {
	// Log records an audit entry.
	Log(ctx context.Context, entry *LogEntry) error

	// LogCreate records a create action (old_data is nil).
	LogCreate(ctx context.Context, entityName string, entityID int64, newData map[string]interface{}, actorID, actorName string) error

	// LogUpdate records an update action with old and new snapshots.
	LogUpdate(ctx context.Context, entityName string, entityID int64, oldData, newData map[string]interface{}, actorID, actorName string) error

	// LogDelete records a delete action (new_data is nil).
	LogDelete(ctx context.Context, entityName string, entityID int64, oldData map[string]interface{}, actorID, actorName string) error

	// List retrieves audit history (read side only; never used by commands).
	List(ctx context.Context, filter ListFilter) ([]*LogEntry, int64, error)
}

// ListFilter contains filtering options for audit history queries.
type ListFilter struct {
	EntityName string
	EntityID   *int64
	ActorID    string
	Action     *Action
	Page       int
	PageSize   int
}

// Validate normalizes the filter values.
func (f *ListFilter) Validate() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// Offset returns the offset for pagination.
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// ComputeChanges computes the per-key differences between old and new data:
// every key whose serialized value differs maps to its {old, new} pair.
func ComputeChanges(oldData, newData map[string]interface{}) map[string]interface{} {
	if oldData == nil || newData == nil {
		return nil
	}

	changes := make(map[string]interface{})
	for key, newVal := range newData {
		oldVal, exists := oldData[key]
		if !exists || !jsonEqual(oldVal, newVal) {
			changes[key] = map[string]interface{}{
				"old": oldVal,
				"new": newVal,
			}
		}
	}
	for key, oldVal := range oldData {
		if _, exists := newData[key]; !exists {
			changes[key] = map[string]interface{}{
				"old": oldVal,
				"new": nil,
			}
		}
	}

	return changes
}

// ChangedFields returns the sorted list of keys that differ between the
// two snapshots.
func ChangedFields(oldData, newData map[string]interface{}) []string {
	changes := ComputeChanges(oldData, newData)
	fields := make([]string, 0, len(changes))
	for k := range changes {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// SnapshotsEqual reports whether two snapshots are deeply equal under JSON
// serialization. Used to skip audit entries for no-op updates.
func SnapshotsEqual(oldData, newData map[string]interface{}) bool {
	if len(oldData) != len(newData) {
		return false
	}
	return len(ComputeChanges(oldData, newData)) == 0
}

// jsonEqual compares two interface values for JSON equality.
func jsonEqual(a, b interface{}) bool {
	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(aBytes) == string(bBytes)
}
