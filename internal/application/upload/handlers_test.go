package upload_test

import (
	"context"
	"errors"
	"fmt"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appupload "github.com/mutugading/catalog-service/internal/application/upload"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/domain/upload"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
)

// MockRepository is a mock implementation of upload.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *upload.Upload) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*upload.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upload.Upload), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter upload.ListFilter) ([]*upload.Upload, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*upload.Upload), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStorage struct {
	objects map[string][]byte
	seq     int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) BuildKey(folder, filename string) string {
	s.seq++
	return fmt.Sprintf("%s/blob-%d%s", folder, s.seq, path.Ext(filename))
}

func (s *fakeStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://cdn.test/catalog/" + key
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
		storage := newFakeStorage()
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appupload.NewCreateHandler(mockRepo, fakeUnitOfWork{}, storage, auditor, bus)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*upload.Upload")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*upload.Upload).SetID(7)
			}).Return(nil)

		result, err := handler.Handle(context.Background(), appupload.CreateCommand{
			Filename:    "banner.png",
			ContentType: "image/png",
			Data:        []byte("png-bytes"),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, int64(9), result.Size)
		assert.Contains(t, result.URL, "uploads/")

		assert.Len(t, storage.objects, 1)
		require.Len(t, auditor.entries, 1)
		assert.Equal(t, "upload", auditor.entries[0].EntityName)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, event.MethodCreate, bus.messages[0].Method)
	})

	t.Run("error - empty content fails before storage", func(t *testing.T) {
		mockRepo := new(MockRepository)
		storage := newFakeStorage()
		handler := appupload.NewCreateHandler(mockRepo, fakeUnitOfWork{}, storage, &fakeAuditor{}, &fakeBus{})

		_, err := handler.Handle(context.Background(), appupload.CreateCommand{
			Filename:    "banner.png",
			ContentType: "image/png",
		})

		assert.ErrorIs(t, err, upload.ErrEmptyContent)
		assert.Empty(t, storage.objects)
	})

	t.Run("compensation - record failure removes the blob", func(t *testing.T) {
		mockRepo := new(MockRepository)
		storage := newFakeStorage()
		bus := &fakeBus{}
		handler := appupload.NewCreateHandler(mockRepo, fakeUnitOfWork{}, storage, &fakeAuditor{}, bus)

		persistErr := errors.New("connection reset")
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*upload.Upload")).Return(persistErr)

		_, err := handler.Handle(context.Background(), appupload.CreateCommand{
			Filename:    "banner.png",
			ContentType: "image/png",
			Data:        []byte("png-bytes"),
		})

		assert.ErrorIs(t, err, persistErr)
		assert.Empty(t, storage.objects)
		assert.Empty(t, bus.messages)
	})
}

func TestDeleteHandler_Handle(t *testing.T) {
	t.Run("success - blob removed after commit", func(t *testing.T) {
		mockRepo := new(MockRepository)
		storage := newFakeStorage()
		storage.objects["uploads/banner.png"] = []byte("png")
		bus := &fakeBus{}
		auditor := &fakeAuditor{}
		handler := appupload.NewDeleteHandler(mockRepo, fakeUnitOfWork{}, storage, auditor, bus)

		mockRepo.On("GetByID", mock.Anything, int64(7)).
			Return(upload.Reconstruct(7, "banner.png", "uploads/banner.png", "image/png", 3, time.Now()), nil)
		mockRepo.On("Delete", mock.Anything, int64(7)).Return(nil)

		err := handler.Handle(context.Background(), appupload.DeleteCommand{ID: 7})

		require.NoError(t, err)
		assert.Empty(t, storage.objects)
		require.Len(t, auditor.entries, 1)
		assert.Equal(t, audit.ActionDelete, auditor.entries[0].Action)
		require.Len(t, bus.messages, 1)
		assert.Equal(t, event.MethodDelete, bus.messages[0].Method)
	})

	t.Run("error - referenced upload keeps its blob", func(t *testing.T) {
		mockRepo := new(MockRepository)
		storage := newFakeStorage()
		storage.objects["uploads/banner.png"] = []byte("png")
		bus := &fakeBus{}
		handler := appupload.NewDeleteHandler(mockRepo, fakeUnitOfWork{}, storage, &fakeAuditor{}, bus)

		mockRepo.On("GetByID", mock.Anything, int64(7)).
			Return(upload.Reconstruct(7, "banner.png", "uploads/banner.png", "image/png", 3, time.Now()), nil)
		mockRepo.On("Delete", mock.Anything, int64(7)).Return(upload.ErrInUse)

		err := handler.Handle(context.Background(), appupload.DeleteCommand{ID: 7})

		assert.ErrorIs(t, err, upload.ErrInUse)
		assert.Len(t, storage.objects, 1)
		assert.Empty(t, bus.messages)
	})
}
