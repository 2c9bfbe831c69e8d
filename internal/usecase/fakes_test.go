package usecase

import (
	"fmt"
	"sort"
	"sync"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
)

// In-memory repositories backing the use case tests.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	nextID   int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*entity.Account{}}
}

func (r *fakeAccountRepo) Create(account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return apperr.New(apperr.KindConflict, "account already exists")
		}
	}
	if account.ID == "" {
		r.nextID++
		account.ID = fmt.Sprintf("acc-%d", r.nextID)
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "account not found")
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetByEmail(email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "account not found")
}

func (r *fakeAccountRepo) GetByIdentifier(identifier string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == identifier || a.Phone == identifier || a.Username == identifier {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "account not found")
}

func (r *fakeAccountRepo) Update(account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return apperr.New(apperr.KindNotFound, "account not found")
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) ListByStatus(status entity.AccountStatus, limit, offset int) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.Status == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ persistent.AccountRepository = (*fakeAccountRepo)(nil)

type fakePostRepo struct {
	mu     sync.Mutex
	posts  map[string]*entity.Post
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*entity.Post{}}
}

func (r *fakePostRepo) Create(post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == post.Slug {
			return apperr.New(apperr.KindConflict, "slug already exists")
		}
	}
	if post.ID == "" {
		r.nextID++
		post.ID = fmt.Sprintf("post-%d", r.nextID)
	}
	cp := clonePost(post)
	r.posts[post.ID] = cp
	return nil
}

func (r *fakePostRepo) GetByID(id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}
	return clonePost(p), nil
}

func (r *fakePostRepo) GetBySlug(slug string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "post not found")
}

func (r *fakePostRepo) SlugExists(slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) Update(post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return apperr.New(apperr.KindNotFound, "post not found")
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *fakePostRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteMany(ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.posts[id]; ok {
			delete(r.posts, id)
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) List(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Post
	for _, p := range r.posts {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if len(filter.IDs) > 0 && !containsString(filter.IDs, p.ID) {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ persistent.PostRepository = (*fakePostRepo)(nil)

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*entity.Comment
	nextID   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*entity.Comment{}}
}

func (r *fakeCommentRepo) Create(comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		r.nextID++
		comment.ID = fmt.Sprintf("comment-%d", r.nextID)
	}
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(id string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "comment not found")
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) Update(comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return apperr.New(apperr.KindNotFound, "comment not found")
	}
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListByPost(postID string) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := map[string]*entity.Comment{}
	var top []*entity.Comment
	for _, c := range r.comments {
		if c.PostID != postID {
			continue
		}
		cp := *c
		byID[cp.ID] = &cp
		if cp.ParentID == nil {
			top = append(top, &cp)
		}
	}
	for _, c := range byID {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
			}
		}
	}
	sort.Slice(top, func(i, j int) bool { return top[i].ID < top[j].ID })
	return top, nil
}

var _ persistent.CommentRepository = (*fakeCommentRepo)(nil)

type pair struct{ a, b string }

type fakeEngagementRepo struct {
	mu        sync.Mutex
	likes     map[pair]bool
	bookmarks map[pair]bool
	follows   map[pair]bool
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		likes:     map[pair]bool{},
		bookmarks: map[pair]bool{},
		follows:   map[pair]bool{},
	}
}

func toggle(set map[pair]bool, p pair) bool {
	if set[p] {
		delete(set, p)
		return false
	}
	set[p] = true
	return true
}

func (r *fakeEngagementRepo) ToggleLike(accountID, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return toggle(r.likes, pair{accountID, postID}), nil
}

func (r *fakeEngagementRepo) LikeCount(postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for p := range r.likes {
		if p.b == postID {
			n++
		}
	}
	return n, nil
}

func (r *fakeEngagementRepo) IsLiked(accountID, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[pair{accountID, postID}], nil
}

func (r *fakeEngagementRepo) LikedPostIDs(accountID string, limit, offset int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for p := range r.likes {
		if p.a == accountID {
			out = append(out, p.b)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeEngagementRepo) ToggleBookmark(accountID, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return toggle(r.bookmarks, pair{accountID, postID}), nil
}

func (r *fakeEngagementRepo) BookmarkCount(postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for p := range r.bookmarks {
		if p.b == postID {
			n++
		}
	}
	return n, nil
}

func (r *fakeEngagementRepo) BookmarkedPostIDs(accountID string, limit, offset int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for p := range r.bookmarks {
		if p.a == accountID {
			out = append(out, p.b)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeEngagementRepo) ToggleFollow(followerID, followeeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return toggle(r.follows, pair{followerID, followeeID}), nil
}

func (r *fakeEngagementRepo) FollowerCount(accountID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for p := range r.follows {
		if p.b == accountID {
			n++
		}
	}
	return n, nil
}

func (r *fakeEngagementRepo) FollowingIDs(accountID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for p := range r.follows {
		if p.a == accountID {
			out = append(out, p.b)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeEngagementRepo) FollowerIDs(accountID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for p := range r.follows {
		if p.b == accountID {
			out = append(out, p.a)
		}
	}
	sort.Strings(out)
	return out, nil
}

var _ persistent.EngagementRepository = (*fakeEngagementRepo)(nil)

type fakeNewsletterRepo struct {
	mu     sync.Mutex
	emails map[string]bool
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{emails: map[string]bool{}}
}

func (r *fakeNewsletterRepo) Subscribe(email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emails[email] {
		return false, nil
	}
	r.emails[email] = true
	return true, nil
}

func (r *fakeNewsletterRepo) Unsubscribe(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.emails, email)
	return nil
}

func (r *fakeNewsletterRepo) List(limit, offset int) ([]*entity.NewsletterSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.NewsletterSubscription
	for email := range r.emails {
		out = append(out, &entity.NewsletterSubscription{Email: email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

var _ persistent.NewsletterRepository = (*fakeNewsletterRepo)(nil)

func clonePost(p *entity.Post) *entity.Post {
	cp := *p
	if p.Tags != nil {
		cp.Tags = append([]string(nil), p.Tags...)
	}
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		cp.PublishedAt = &t
	}
	return &cp
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
