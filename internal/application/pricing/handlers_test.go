package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apppricing "github.com/mutugading/catalog-service/internal/application/pricing"
	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/pricing"
	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// MockRepository is a mock implementation of pricing.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *pricing.Policy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*pricing.Policy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Policy), args.Error(1)
}

func (m *MockRepository) GetByCategoryID(ctx context.Context, categoryID int64) (*pricing.Policy, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Policy), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter pricing.ListFilter) ([]*pricing.Policy, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*pricing.Policy), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, p *pricing.Policy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of category.Repository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, filter category.ListFilter) ([]*category.Category, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*category.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) ListAll(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
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
		mockCategories := new(MockCategoryRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := apppricing.NewCreateHandler(mockRepo, mockCategories, fakeUnitOfWork{}, auditor, bus)

		mockCategories.On("ExistsByID", mock.Anything, int64(10)).Return(true, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*pricing.Policy")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*pricing.Policy).SetID(3)
			}).Return(nil)

		result, err := handler.Handle(context.Background(), apppricing.CreateCommand{
			CategoryID:    10,
			MarkupPercent: 15,
			TaxRate:       19,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), result.ID)
		assert.Equal(t, int64(10), result.CategoryID)

		require.Len(t, auditor.entries, 1)
		assert.Equal(t, "category_pricing_policy", auditor.entries[0].EntityName)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, "category_pricing_policy", bus.messages[0].Entity)
	})

	t.Run("error - missing category carries its id", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCategories := new(MockCategoryRepository)
		handler := apppricing.NewCreateHandler(mockRepo, mockCategories, fakeUnitOfWork{}, &fakeAuditor{}, &fakeBus{})

		mockCategories.On("ExistsByID", mock.Anything, int64(404)).Return(false, nil)

		_, err := handler.Handle(context.Background(), apppricing.CreateCommand{CategoryID: 404})

		require.ErrorIs(t, err, pricing.ErrCategoryNotFound)
		var domainErr *shared.Error
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "404", domainErr.Details["category_id"])
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("error - second policy for the same category conflicts", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCategories := new(MockCategoryRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := apppricing.NewCreateHandler(mockRepo, mockCategories, fakeUnitOfWork{}, auditor, bus)

		mockCategories.On("ExistsByID", mock.Anything, int64(10)).Return(true, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*pricing.Policy")).
			Return(pricing.ErrAlreadyExists)

		_, err := handler.Handle(context.Background(), apppricing.CreateCommand{CategoryID: 10, MarkupPercent: 15})

		require.ErrorIs(t, err, pricing.ErrAlreadyExists)
		var domainErr *shared.Error
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "category_pricing_policy_already_exists", domainErr.Code)
		assert.Equal(t, shared.KindConflict, domainErr.Kind)
		assert.Empty(t, auditor.entries)
		assert.Empty(t, bus.messages)
	})

	t.Run("error - rate out of range", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCategories := new(MockCategoryRepository)
		handler := apppricing.NewCreateHandler(mockRepo, mockCategories, fakeUnitOfWork{}, &fakeAuditor{}, &fakeBus{})

		mockCategories.On("ExistsByID", mock.Anything, int64(10)).Return(true, nil)

		_, err := handler.Handle(context.Background(), apppricing.CreateCommand{CategoryID: 10, DiscountPercent: 101})

		assert.ErrorIs(t, err, pricing.ErrInvalidRateValue)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateHandler_Handle(t *testing.T) {
	existing := func() *pricing.Policy {
		return pricing.Reconstruct(3, 10, 15, 5, 0, 19, time.Now().Add(-time.Hour), nil)
	}

	t.Run("tax change publishes field-scoped event", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := apppricing.NewUpdateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		mockRepo.On("GetByID", mock.Anything, int64(3)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*pricing.Policy")).Return(nil)

		tax := 7.0
		result, err := handler.Handle(context.Background(), apppricing.UpdateCommand{ID: 3, TaxRate: &tax})

		require.NoError(t, err)
		assert.Equal(t, 7.0, result.TaxRate)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, []string{"tax_rate"}, bus.messages[0].Payload["changed_fields"])
	})

	t.Run("no-op update writes no audit entry and no event", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := apppricing.NewUpdateHandler(mockRepo, fakeUnitOfWork{}, auditor, bus)

		mockRepo.On("GetByID", mock.Anything, int64(3)).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*pricing.Policy")).Return(nil)

		markup := 15.0
		_, err := handler.Handle(context.Background(), apppricing.UpdateCommand{ID: 3, MarkupPercent: &markup})

		require.NoError(t, err)
		assert.Empty(t, auditor.entries)
		assert.Empty(t, bus.messages)
	})
}

func TestGetHandler_Handle(t *testing.T) {
	t.Run("by category id", func(t *testing.T) {
		mockRepo := new(MockRepository)
		handler := apppricing.NewGetHandler(mockRepo)

		mockRepo.On("GetByCategoryID", mock.Anything, int64(10)).
			Return(pricing.Reconstruct(3, 10, 15, 5, 0, 19, time.Now(), nil), nil)

		categoryID := int64(10)
		result, err := handler.Handle(context.Background(), apppricing.GetQuery{CategoryID: &categoryID})

		require.NoError(t, err)
		assert.Equal(t, int64(3), result.ID)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("by id", func(t *testing.T) {
		mockRepo := new(MockRepository)
		handler := apppricing.NewGetHandler(mockRepo)

		mockRepo.On("GetByID", mock.Anything, int64(3)).
			Return(pricing.Reconstruct(3, 10, 15, 5, 0, 19, time.Now(), nil), nil)

		result, err := handler.Handle(context.Background(), apppricing.GetQuery{ID: 3})

		require.NoError(t, err)
		assert.Equal(t, int64(10), result.CategoryID)
	})
}
