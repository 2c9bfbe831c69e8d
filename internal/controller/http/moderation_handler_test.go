package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
)

// MockModerationUseCase is a mock implementation of ModerationUseCase
type MockModerationUseCase struct {
	mock.Mock
}

func (m *MockModerationUseCase) Publish(actor entity.CallContext, postID string) (*entity.Post, error) {
	args := m.Called(actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockModerationUseCase) Unpublish(actor entity.CallContext, postID string) (*entity.Post, error) {
	args := m.Called(actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockModerationUseCase) Archive(actor entity.CallContext, postID string) (*entity.Post, error) {
	args := m.Called(actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockModerationUseCase) Ban(actor entity.CallContext, postID string) (*entity.Post, error) {
	args := m.Called(actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockModerationUseCase) Unban(actor entity.CallContext, postID string) (*entity.Post, error) {
	args := m.Called(actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockModerationUseCase) Delete(actor entity.CallContext, postID string) error {
	args := m.Called(actor, postID)
	return args.Error(0)
}

func (m *MockModerationUseCase) BulkPublish(actor entity.CallContext, postIDs []string) (usecase.BulkResult, error) {
	args := m.Called(actor, postIDs)
	return args.Get(0).(usecase.BulkResult), args.Error(1)
}

func (m *MockModerationUseCase) BulkUnpublish(actor entity.CallContext, postIDs []string) (usecase.BulkResult, error) {
	args := m.Called(actor, postIDs)
	return args.Get(0).(usecase.BulkResult), args.Error(1)
}

func (m *MockModerationUseCase) BulkArchive(actor entity.CallContext, postIDs []string) (usecase.BulkResult, error) {
	args := m.Called(actor, postIDs)
	return args.Get(0).(usecase.BulkResult), args.Error(1)
}

func (m *MockModerationUseCase) BulkDelete(actor entity.CallContext, postIDs []string) (usecase.BulkResult, error) {
	args := m.Called(actor, postIDs)
	return args.Get(0).(usecase.BulkResult), args.Error(1)
}

var _ usecase.ModerationUseCase = (*MockModerationUseCase)(nil)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) Create(authorID string, in usecase.CreatePostInput) (*entity.Post, error) {
	args := m.Called(authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) Update(actor entity.CallContext, postID string, in usecase.UpdatePostInput) (*entity.Post, error) {
	args := m.Called(actor, postID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetBySlug(viewer *entity.CallContext, slug string) (*entity.Post, error) {
	args := m.Called(viewer, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPublished(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListOwn(authorID string, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListModeration(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func TestPublish_Success(t *testing.T) {
	mockModeration := new(MockModerationUseCase)
	handler := NewModerationHandler(mockModeration, nil, logger.New())

	router := setupTestRouter()
	router.POST("/admin/posts/:id/publish", asCaller("admin-1", entity.RoleAdmin, handler.Publish))

	post := &entity.Post{ID: "post-1", Status: entity.PostPublished, IsPublished: true}
	mockModeration.On("Publish", mock.AnythingOfType("entity.CallContext"), "post-1").Return(post, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/posts/post-1/publish", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Post
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, entity.PostPublished, response.Status)
	mockModeration.AssertExpectations(t)
}

func TestPublish_BannedPostForbiddenForAdmin(t *testing.T) {
	mockModeration := new(MockModerationUseCase)
	handler := NewModerationHandler(mockModeration, nil, logger.New())

	router := setupTestRouter()
	router.POST("/admin/posts/:id/publish", asCaller("admin-1", entity.RoleAdmin, handler.Publish))

	mockModeration.On("Publish", mock.AnythingOfType("entity.CallContext"), "post-1").
		Return(nil, apperr.New(apperr.KindInsufficientRole, "only a super admin may publish a banned post"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/posts/post-1/publish", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockModeration.AssertExpectations(t)
}

func TestUnpublish_Conflict(t *testing.T) {
	mockModeration := new(MockModerationUseCase)
	handler := NewModerationHandler(mockModeration, nil, logger.New())

	router := setupTestRouter()
	router.POST("/admin/posts/:id/unpublish", asCaller("admin-1", entity.RoleAdmin, handler.Unpublish))

	mockModeration.On("Unpublish", mock.AnythingOfType("entity.CallContext"), "post-1").
		Return(nil, apperr.New(apperr.KindConflict, "post is not published"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/posts/post-1/unpublish", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockModeration.AssertExpectations(t)
}

func TestBulkPublish_ReportsAffectedCount(t *testing.T) {
	mockModeration := new(MockModerationUseCase)
	handler := NewModerationHandler(mockModeration, nil, logger.New())

	router := setupTestRouter()
	router.POST("/admin/posts/bulk/publish", asCaller("admin-1", entity.RoleAdmin, handler.BulkPublish))

	mockModeration.On("BulkPublish", mock.AnythingOfType("entity.CallContext"), []string{"a", "b", "c"}).
		Return(usecase.BulkResult{Requested: 3, Affected: 2}, nil)

	body := `{"post_ids":["a","b","c"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/posts/bulk/publish", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response usecase.BulkResult
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 3, response.Requested)
	assert.Equal(t, int64(2), response.Affected)
	mockModeration.AssertExpectations(t)
}

func TestBulkPublish_EmptyListRejected(t *testing.T) {
	mockModeration := new(MockModerationUseCase)
	handler := NewModerationHandler(mockModeration, nil, logger.New())

	router := setupTestRouter()
	router.POST("/admin/posts/bulk/publish", asCaller("admin-1", entity.RoleAdmin, handler.BulkPublish))

	body := `{"post_ids":[]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/posts/bulk/publish", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockModeration.AssertNotCalled(t, "BulkPublish")
}

func TestModerationQueue_FiltersByStatus(t *testing.T) {
	mockPost := new(MockPostUseCase)
	handler := NewModerationHandler(nil, mockPost, logger.New())

	router := setupTestRouter()
	router.GET("/admin/posts", asCaller("admin-1", entity.RoleAdmin, handler.Queue))

	status := entity.PostDraft
	expected := persistent.PostFilter{Status: &status}
	posts := []*entity.Post{{ID: "post-1", Status: entity.PostDraft}}
	mockPost.On("ListModeration", mock.MatchedBy(func(f persistent.PostFilter) bool {
		return f.Status != nil && *f.Status == *expected.Status
	}), 20, 0).Return(posts, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/posts?status=draft", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockPost.AssertExpectations(t)
}

func TestDeletePost_AuthorWithUserRole(t *testing.T) {
	mockModeration := new(MockModerationUseCase)
	handler := NewModerationHandler(mockModeration, nil, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", asCaller("author-1", entity.RoleUser, handler.Delete))

	mockModeration.On("Delete", mock.MatchedBy(func(actor entity.CallContext) bool {
		return actor.AccountID == "author-1" && actor.Role == entity.RoleUser
	}), "post-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockModeration.AssertExpectations(t)
}

func TestArchivePost_AuthorWithUserRole(t *testing.T) {
	mockModeration := new(MockModerationUseCase)
	handler := NewModerationHandler(mockModeration, nil, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/archive", asCaller("author-1", entity.RoleUser, handler.Archive))

	post := &entity.Post{ID: "post-1", Status: entity.PostArchived}
	mockModeration.On("Archive", mock.MatchedBy(func(actor entity.CallContext) bool {
		return actor.AccountID == "author-1" && actor.Role == entity.RoleUser
	}), "post-1").Return(post, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/archive", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Post
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, entity.PostArchived, response.Status)
	mockModeration.AssertExpectations(t)
}
