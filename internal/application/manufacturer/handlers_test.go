package manufacturer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appmanufacturer "github.com/mutugading/catalog-service/internal/application/manufacturer"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// MockRepository is a mock implementation of manufacturer.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, mf *manufacturer.Manufacturer) error {
	args := m.Called(ctx, mf)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*manufacturer.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manufacturer.Manufacturer), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter manufacturer.ListFilter) ([]*manufacturer.Manufacturer, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*manufacturer.Manufacturer), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, mf *manufacturer.Manufacturer) error {
	args := m.Called(ctx, mf)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBus struct {
	messages []event.Message
}

func (b *fakeBus) Publish(_ context.Context, msg event.Message) {
	b.messages = append(b.messages, msg)
}

func (b *fakeBus) PublishMany(_ context.Context, msgs []event.Message) {
	b.messages = append(b.messages, msgs...)
}

type fakeAuditor struct {
	entries []*audit.LogEntry
}

func (a *fakeAuditor) Log(_ context.Context, entry *audit.LogEntry) error {
	a.entries = append(a.entries, entry)
	return nil
}

func (a *fakeAuditor) LogCreate(ctx context.Context, entityName string, entityID int64, newData map[string]interface{}, actorID, actorName string) error {
	return a.Log(ctx, &audit.LogEntry{EntityName: entityName, EntityID: entityID, Action: audit.ActionCreate, NewData: newData, ActorID: actorID, ActorName: actorName})
}

func (a *fakeAuditor) LogUpdate(ctx context.Context, entityName string, entityID int64, oldData, newData map[string]interface{}, actorID, actorName string) error {
	return a.Log(ctx, &audit.LogEntry{EntityName: entityName, EntityID: entityID, Action: audit.ActionUpdate, OldData: oldData, NewData: newData, Changes: audit.ComputeChanges(oldData, newData), ActorID: actorID, ActorName: actorName})
}

func (a *fakeAuditor) LogDelete(ctx context.Context, entityName string, entityID int64, oldData map[string]interface{}, actorID, actorName string) error {
	return a.Log(ctx, &audit.LogEntry{EntityName: entityName, EntityID: entityID, Action: audit.ActionDelete, OldData: oldData, ActorID: actorID, ActorName: actorName})
}

func (a *fakeAuditor) List(_ context.Context, _ audit.ListFilter) ([]*audit.LogEntry, int64, error) {
	return a.entries, int64(len(a.entries)), nil
}

func TestCreateHandler_Handle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appmanufacturer.NewCreateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*manufacturer.Manufacturer")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*manufacturer.Manufacturer).SetID(7)
			}).Return(nil)

		result, err := handler.Handle(context.Background(), appmanufacturer.CreateCommand{
			Name:    "Acme Industries",
			Country: "DE",
			ActorID: "user-1",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, "Acme Industries", result.Name)

		require.Len(t, auditor.entries, 1)
		assert.Equal(t, audit.ActionCreate, auditor.entries[0].Action)
		assert.Equal(t, "manufacturer", auditor.entries[0].EntityName)

		require.Len(t, bus.messages, 1)
		assert.Equal(t, event.MethodCreate, bus.messages[0].Method)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - invalid name", func(t *testing.T) {
		mockRepo := new(MockRepository)
		handler := appmanufacturer.NewCreateHandler(mockRepo, fakeUnitOfWork{}, &fakeAuditor{}, &fakeBus{})

		_, err := handler.Handle(context.Background(), appmanufacturer.CreateCommand{Name: "A"})

		assert.ErrorIs(t, err, manufacturer.ErrNameTooShort)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateHandler_Handle(t *testing.T) {
	t.Run("country change publishes field-scoped event", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appmanufacturer.NewUpdateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		existing := manufacturer.Reconstruct(7, "Acme Industries", "DE", "", time.Now(), nil)
		mockRepo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*manufacturer.Manufacturer")).Return(nil)

		country := "US"
		result, err := handler.Handle(context.Background(), appmanufacturer.UpdateCommand{ID: 7, Country: &country})

		require.NoError(t, err)
		assert.Equal(t, "US", result.Country)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, []string{"country"}, bus.messages[0].Payload["changed_fields"])
	})

	t.Run("no-op update writes no audit entry and no event", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appmanufacturer.NewUpdateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		existing := manufacturer.Reconstruct(7, "Acme Industries", "DE", "", time.Now(), nil)
		mockRepo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*manufacturer.Manufacturer")).Return(nil)

		name := "Acme Industries"
		_, err := handler.Handle(context.Background(), appmanufacturer.UpdateCommand{ID: 7, Name: &name})

		require.NoError(t, err)
		assert.Empty(t, auditor.entries)
		assert.Empty(t, bus.messages)
	})
}

func TestDeleteHandler_Handle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appmanufacturer.NewDeleteHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		existing := manufacturer.Reconstruct(7, "Acme Industries", "DE", "", time.Now(), nil)
		mockRepo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
		mockRepo.On("Delete", mock.Anything, int64(7)).Return(nil)

		err := handler.Handle(context.Background(), appmanufacturer.DeleteCommand{ID: 7})

		require.NoError(t, err)
		require.Len(t, auditor.entries, 1)
		assert.Equal(t, audit.ActionDelete, auditor.entries[0].Action)
		assert.Nil(t, auditor.entries[0].NewData)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, event.MethodDelete, bus.messages[0].Method)
	})

	t.Run("error - not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		handler := appmanufacturer.NewDeleteHandler(mockRepo, fakeUnitOfWork{}, &fakeAuditor{}, &fakeBus{})

		mockRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, manufacturer.ErrNotFound)

		err := handler.Handle(context.Background(), appmanufacturer.DeleteCommand{ID: 404})

		assert.ErrorIs(t, err, manufacturer.ErrNotFound)
	})
}
