package supplier_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appsupplier "github.com/mutugading/catalog-service/internal/application/supplier"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/supplier"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// MockRepository is a mock implementation of supplier.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*supplier.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter supplier.ListFilter) ([]*supplier.Supplier, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*supplier.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
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
		handler := appsupplier.NewCreateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*supplier.Supplier")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*supplier.Supplier).SetID(11)
			}).Return(nil)

		result, err := handler.Handle(context.Background(), appsupplier.CreateCommand{
			Name:  "Acme Logistics",
			Email: "sales@acme.com",
			Phone: "+49 30 1234",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(11), result.ID)
		assert.Equal(t, "sales@acme.com", result.Email)

		require.Len(t, auditor.entries, 1)
		assert.Equal(t, "supplier", auditor.entries[0].EntityName)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, event.MethodCreate, bus.messages[0].Method)
	})

	t.Run("error - invalid email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		handler := appsupplier.NewCreateHandler(mockRepo, fakeUnitOfWork{}, &fakeAuditor{}, &fakeBus{})

		_, err := handler.Handle(context.Background(), appsupplier.CreateCommand{
			Name:  "Acme Logistics",
			Email: "not-an-email",
		})

		assert.ErrorIs(t, err, supplier.ErrInvalidEmail)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateHandler_Handle(t *testing.T) {
	existing := func() *supplier.Supplier {
		return supplier.Reconstruct(11, "Acme Logistics", "sales@acme.com", "", "", time.Now(), nil)
	}

	t.Run("email change publishes field-scoped event", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appsupplier.NewUpdateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		mockRepo.On("GetByID", mock.Anything, int64(11)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*supplier.Supplier")).Return(nil)

		email := "orders@acme.com"
		result, err := handler.Handle(context.Background(), appsupplier.UpdateCommand{ID: 11, Email: &email})

		require.NoError(t, err)
		assert.Equal(t, "orders@acme.com", result.Email)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, []string{"email"}, bus.messages[0].Payload["changed_fields"])
	})

	t.Run("error - invalid email keeps previous value", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		handler := appsupplier.NewUpdateHandler(mockRepo, fakeUnitOfWork{}, &fakeAuditor{}, bus)

		mockRepo.On("GetByID", mock.Anything, int64(11)).Return(existing(), nil)

		email := "broken@"
		_, err := handler.Handle(context.Background(), appsupplier.UpdateCommand{ID: 11, Email: &email})

		assert.ErrorIs(t, err, supplier.ErrInvalidEmail)
		assert.Empty(t, bus.messages)
	})

	t.Run("no-op update writes no audit entry and no event", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appsupplier.NewUpdateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		mockRepo.On("GetByID", mock.Anything, int64(11)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*supplier.Supplier")).Return(nil)

		name := "Acme Logistics"
		_, err := handler.Handle(context.Background(), appsupplier.UpdateCommand{ID: 11, Name: &name})

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
		handler := appsupplier.NewDeleteHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		mockRepo.On("GetByID", mock.Anything, int64(11)).
			Return(supplier.Reconstruct(11, "Acme Logistics", "", "", "", time.Now(), nil), nil)
		mockRepo.On("Delete", mock.Anything, int64(11)).Return(nil)

		err := handler.Handle(context.Background(), appsupplier.DeleteCommand{ID: 11})

		require.NoError(t, err)
		require.Len(t, auditor.entries, 1)
		assert.Equal(t, audit.ActionDelete, auditor.entries[0].Action)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, event.MethodDelete, bus.messages[0].Method)
	})
}
