package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
)

func TestCreatePost_SlugFromTitle(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	post, err := uc.Create("author-1", CreatePostInput{
		Title:    "Hello World",
		Body:     "First post.",
		Category: entity.CategoryTechnology,
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, entity.PostDraft, post.Status)
	assert.False(t, post.IsPublished)
	assert.Nil(t, post.PublishedAt)
}

func TestCreatePost_SlugCollisionGetsSuffix(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	first, err := uc.Create("author-1", CreatePostInput{Title: "Hello World", Body: "a"})
	assert.NoError(t, err)

	second, err := uc.Create("author-2", CreatePostInput{Title: "Hello World", Body: "b"})
	assert.NoError(t, err)

	assert.Equal(t, "hello-world", first.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "hello-world-"))
	assert.NotEqual(t, first.Slug, second.Slug)
}

func TestCreatePost_DedupesTagsPreservingOrder(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	post, err := uc.Create("author-1", CreatePostInput{
		Title: "Tagged",
		Body:  "Body",
		Tags:  []string{"go", "web", "go", "", "api"},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"go", "web", "api"}, post.Tags)
}

func TestCreatePost_Validation(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	_, err := uc.Create("author-1", CreatePostInput{Body: "no title"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = uc.Create("author-1", CreatePostInput{Title: "No body"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = uc.Create("author-1", CreatePostInput{Title: "Bad category", Body: "x", Category: "poetry"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreatePost_DefaultsCategory(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	post, err := uc.Create("author-1", CreatePostInput{Title: "Uncategorized", Body: "x"})

	assert.NoError(t, err)
	assert.Equal(t, entity.CategoryOther, post.Category)
}

func TestUpdatePost_AuthorOnlyAndSlugImmutable(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	post, err := uc.Create("author-1", CreatePostInput{Title: "Hello World", Body: "x"})
	assert.NoError(t, err)

	title := "Completely Different Title"
	stranger := entity.CallContext{AccountID: "author-2", Role: entity.RoleUser}
	_, err = uc.Update(stranger, post.ID, UpdatePostInput{Title: &title})
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientRole))

	author := entity.CallContext{AccountID: "author-1", Role: entity.RoleUser}
	updated, err := uc.Update(author, post.ID, UpdatePostInput{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, "Completely Different Title", updated.Title)
	assert.Equal(t, "hello-world", updated.Slug)
}

func TestGetBySlug_UnpublishedHiddenFromPublic(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	post, err := uc.Create("author-1", CreatePostInput{Title: "Secret Draft", Body: "x"})
	assert.NoError(t, err)

	_, err = uc.GetBySlug(nil, post.Slug)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	stranger := entity.CallContext{AccountID: "author-2", Role: entity.RoleUser}
	_, err = uc.GetBySlug(&stranger, post.Slug)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	author := entity.CallContext{AccountID: "author-1", Role: entity.RoleUser}
	got, err := uc.GetBySlug(&author, post.Slug)
	assert.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	admin := entity.CallContext{AccountID: "admin-1", Role: entity.RoleAdmin}
	got, err = uc.GetBySlug(&admin, post.Slug)
	assert.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestGetBySlug_PublishedVisibleToAnyone(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	post, err := uc.Create("author-1", CreatePostInput{Title: "Public Post", Body: "x"})
	assert.NoError(t, err)

	stored, _ := repo.GetByID(post.ID)
	stored.Publish(stored.CreatedAt)
	assert.NoError(t, repo.Update(stored))

	got, err := uc.GetBySlug(nil, post.Slug)
	assert.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestListPublished_ForcesPublishedStatus(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	draft, _ := uc.Create("author-1", CreatePostInput{Title: "Draft", Body: "x"})
	live, _ := uc.Create("author-1", CreatePostInput{Title: "Live", Body: "x"})

	stored, _ := repo.GetByID(live.ID)
	stored.Publish(stored.CreatedAt)
	assert.NoError(t, repo.Update(stored))

	posts, err := uc.ListPublished(persistent.PostFilter{}, 20, 0)

	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, live.ID, posts[0].ID)
	assert.NotEqual(t, draft.ID, posts[0].ID)
}

func TestListOwn_IncludesAllStatuses(t *testing.T) {
	repo := newFakePostRepo()
	uc := NewPostUseCase(repo, logger.New())

	_, _ = uc.Create("author-1", CreatePostInput{Title: "One", Body: "x"})
	_, _ = uc.Create("author-1", CreatePostInput{Title: "Two", Body: "x"})
	_, _ = uc.Create("author-2", CreatePostInput{Title: "Other", Body: "x"})

	posts, err := uc.ListOwn("author-1", 20, 0)

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
}
