// Package audit provides PostgreSQL implementation of audit logging.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mutugading/catalog-service/internal/infrastructure/postgres"
)

// PostgresLogger implements Logger using PostgreSQL. Writes join the
// transaction carried by the context.
type PostgresLogger struct {
	db *postgres.DB
}

// NewPostgresLogger creates a new PostgreSQL audit logger.
func NewPostgresLogger(db *postgres.DB) *PostgresLogger {
	return &PostgresLogger{db: db}
}

var _ Logger = (*PostgresLogger)(nil)

// Log records an audit entry.
func (l *PostgresLogger) Log(ctx context.Context, entry *LogEntry) error {
	if entry.PerformedAt.IsZero() {
		entry.PerformedAt = time.Now()
	}

	oldDataJSON, err := json.Marshal(entry.OldData)
	if err != nil {
		oldDataJSON = []byte("null")
	}
	newDataJSON, err := json.Marshal(entry.NewData)
	if err != nil {
		newDataJSON = []byte("null")
	}
	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		changesJSON = []byte("null")
	}

	query := `
		INSERT INTO audit_logs (
			entity_name, entity_id, action,
			old_data, new_data, changes,
			actor_id, actor_name, performed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err = l.db.Querier(ctx).QueryRowContext(ctx, query,
		entry.EntityName,
		entry.EntityID,
		string(entry.Action),
		nullableJSON(oldDataJSON),
		nullableJSON(newDataJSON),
		nullableJSON(changesJSON),
		entry.ActorID,
		nullableString(entry.ActorName),
		entry.PerformedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// LogCreate records a create action.
func (l *PostgresLogger) LogCreate(ctx context.Context, entityName string, entityID int64, newData map[string]interface{}, actorID, actorName string) error {
	return l.Log(ctx, &LogEntry{
		EntityName: entityName,
		EntityID:   entityID,
		Action:     ActionCreate,
		NewData:    newData,
		ActorID:    actorID,
		ActorName:  actorName,
	})
}

// LogUpdate records an update action with old and new snapshots.
func (l *PostgresLogger) LogUpdate(ctx context.Context, entityName string, entityID int64, oldData, newData map[string]interface{}, actorID, actorName string) error {
	return l.Log(ctx, &LogEntry{
		EntityName: entityName,
		EntityID:   entityID,
		Action:     ActionUpdate,
		OldData:    oldData,
		NewData:    newData,
		Changes:    ComputeChanges(oldData, newData),
		ActorID:    actorID,
		ActorName:  actorName,
	})
}

// LogDelete records a delete action.
func (l *PostgresLogger) LogDelete(ctx context.Context, entityName string, entityID int64, oldData map[string]interface{}, actorID, actorName string) error {
	return l.Log(ctx, &LogEntry{
		EntityName: entityName,
		EntityID:   entityID,
		Action:     ActionDelete,
		OldData:    oldData,
		ActorID:    actorID,
		ActorName:  actorName,
	})
}

// List retrieves audit history with filtering and pagination.
func (l *PostgresLogger) List(ctx context.Context, filter ListFilter) ([]*LogEntry, int64, error) {
	filter.Validate()

	baseQuery := `FROM audit_logs WHERE TRUE`
	args := []interface{}{}
	argIndex := 1

	if filter.EntityName != "" {
		baseQuery += fmt.Sprintf(` AND entity_name = $%d`, argIndex)
		args = append(args, filter.EntityName)
		argIndex++
	}
	if filter.EntityID != nil {
		baseQuery += fmt.Sprintf(` AND entity_id = $%d`, argIndex)
		args = append(args, *filter.EntityID)
		argIndex++
	}
	if filter.ActorID != "" {
		baseQuery += fmt.Sprintf(` AND actor_id = $%d`, argIndex)
		args = append(args, filter.ActorID)
		argIndex++
	}
	if filter.Action != nil {
		baseQuery += fmt.Sprintf(` AND action = $%d`, argIndex)
		args = append(args, string(*filter.Action))
		argIndex++
	}

	var total int64
	if err := l.db.Querier(ctx).QueryRowContext(ctx, `SELECT COUNT(*) `+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	selectQuery := `
		SELECT id, entity_name, entity_id, action, old_data, new_data, changes,
			   actor_id, actor_name, performed_at
	` + baseQuery + fmt.Sprintf(` ORDER BY performed_at DESC LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := l.db.Querier(ctx).QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries, err := scanLogEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func scanLogEntries(rows *sql.Rows) ([]*LogEntry, error) {
	var entries []*LogEntry

	for rows.Next() {
		var entry LogEntry
		var oldDataJSON, newDataJSON, changesJSON sql.NullString
		var actorName sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.EntityName,
			&entry.EntityID,
			&entry.Action,
			&oldDataJSON,
			&newDataJSON,
			&changesJSON,
			&entry.ActorID,
			&actorName,
			&entry.PerformedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}

		if oldDataJSON.Valid {
			if err := json.Unmarshal([]byte(oldDataJSON.String), &entry.OldData); err != nil {
				entry.OldData = nil
			}
		}
		if newDataJSON.Valid {
			if err := json.Unmarshal([]byte(newDataJSON.String), &entry.NewData); err != nil {
				entry.NewData = nil
			}
		}
		if changesJSON.Valid {
			if err := json.Unmarshal([]byte(changesJSON.String), &entry.Changes); err != nil {
				entry.Changes = nil
			}
		}
		entry.ActorName = actorName.String

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", err)
	}

	return entries, nil
}

func nullableJSON(data []byte) interface{} {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return data
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
