package auditlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/catalog-service/internal/application/auditlog"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// MockLogger is a mock implementation of audit.Logger.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Log(ctx context.Context, entry *audit.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogger) LogCreate(ctx context.Context, entityName string, entityID int64, newData map[string]interface{}, actorID, actorName string) error {
	args := m.Called(ctx, entityName, entityID, newData, actorID, actorName)
	return args.Error(0)
}

func (m *MockLogger) LogUpdate(ctx context.Context, entityName string, entityID int64, oldData, newData map[string]interface{}, actorID, actorName string) error {
	args := m.Called(ctx, entityName, entityID, oldData, newData, actorID, actorName)
	return args.Error(0)
}

func (m *MockLogger) LogDelete(ctx context.Context, entityName string, entityID int64, oldData map[string]interface{}, actorID, actorName string) error {
	args := m.Called(ctx, entityName, entityID, oldData, actorID, actorName)
	return args.Error(0)
}

func (m *MockLogger) List(ctx context.Context, filter audit.ListFilter) ([]*audit.LogEntry, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*audit.LogEntry), args.Get(1).(int64), args.Error(2)
}

func TestListHandler_Handle(t *testing.T) {
	t.Run("maps filter and entries", func(t *testing.T) {
		mockLogger := new(MockLogger)
		handler := auditlog.NewListHandler(mockLogger)

		entityID := int64(5)
		action := audit.ActionUpdate
		expected := audit.ListFilter{
			EntityName: "category",
			EntityID:   &entityID,
			Action:     &action,
			Page:       1,
			PageSize:   20,
		}
		entries := []*audit.LogEntry{{
			ID:          1,
			EntityName:  "category",
			EntityID:    5,
			Action:      audit.ActionUpdate,
			Changes:     map[string]interface{}{"name": map[string]interface{}{"old": "a", "new": "b"}},
			ActorID:     "user-1",
			PerformedAt: time.Now(),
		}}
		mockLogger.On("List", mock.Anything, expected).Return(entries, int64(1), nil)

		result, err := handler.Handle(context.Background(), auditlog.ListQuery{
			EntityName: "category",
			EntityID:   &entityID,
			Action:     "update",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "update", result.Entries[0].Action)
		assert.Contains(t, result.Entries[0].Changes, "name")
		mockLogger.AssertExpectations(t)
	})

	t.Run("page size is capped", func(t *testing.T) {
		mockLogger := new(MockLogger)
		handler := auditlog.NewListHandler(mockLogger)

		mockLogger.On("List", mock.Anything, mock.MatchedBy(func(f audit.ListFilter) bool {
			return f.PageSize == 100
		})).Return([]*audit.LogEntry{}, int64(0), nil)

		result, err := handler.Handle(context.Background(), auditlog.ListQuery{PageSize: 5000})

		require.NoError(t, err)
		assert.Equal(t, 100, result.PageSize)
	})
}
