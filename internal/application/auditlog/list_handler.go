// Package auditlog provides the read-side audit history query. Commands
// never go through here; audit entries are written inside the mutating
// transactions themselves.
package auditlog

import (
	"context"
	"time"

	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// ListQuery represents the audit history query.
type ListQuery struct {
	EntityName string
	EntityID   *int64
	ActorID    string
	Action     string
	Page       int
	PageSize   int
}

// EntryDTO is the read shape of one audit entry.
type EntryDTO struct {
	ID          int64                  `json:"id"`
	EntityName  string                 `json:"entity_name"`
	EntityID    int64                  `json:"entity_id"`
	Action      string                 `json:"action"`
	OldData     map[string]interface{} `json:"old_data,omitempty"`
	NewData     map[string]interface{} `json:"new_data,omitempty"`
	Changes     map[string]interface{} `json:"changes,omitempty"`
	ActorID     string                 `json:"actor_id"`
	ActorName   string                 `json:"actor_name,omitempty"`
	PerformedAt time.Time              `json:"performed_at"`
}

// ListResult represents the audit history result.
type ListResult struct {
	Entries  []*EntryDTO `json:"entries"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// ListHandler handles the audit history query.
type ListHandler struct {
	logger audit.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(logger audit.Logger) *ListHandler {
	return &ListHandler{logger: logger}
}

// Handle executes the audit history query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := audit.ListFilter{
		EntityName: query.EntityName,
		EntityID:   query.EntityID,
		ActorID:    query.ActorID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.Action != "" {
		action := audit.Action(query.Action)
		filter.Action = &action
	}
	filter.Validate()

	entries, total, err := h.logger.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, &EntryDTO{
			ID:          e.ID,
			EntityName:  e.EntityName,
			EntityID:    e.EntityID,
			Action:      string(e.Action),
			OldData:     e.OldData,
			NewData:     e.NewData,
			Changes:     e.Changes,
			ActorID:     e.ActorID,
			ActorName:   e.ActorName,
			PerformedAt: e.PerformedAt,
		})
	}

	return &ListResult{
		Entries:  dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
