// Package memdb is an in-memory newsportal.Store. It is the default backend and
// the one used by the HTTP tests.
package memdb

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/daniilsolovey/gnn-news/internal/newsportal"
)

var _ newsportal.Store = (*DB)(nil)

type tables struct {
	categories map[int]newsportal.Category
	authors    map[int]newsportal.Author
	articles   map[int]newsportal.Article
	related    map[int]newsportal.RelatedStory
	users      map[int]newsportal.User
	comments   map[int]newsportal.Comment
	images     map[int]newsportal.Image
	push       map[int]newsportal.PushSubscription
}

func newTables() tables {
	return tables{
		categories: make(map[int]newsportal.Category),
		authors:    make(map[int]newsportal.Author),
		articles:   make(map[int]newsportal.Article),
		related:    make(map[int]newsportal.RelatedStory),
		users:      make(map[int]newsportal.User),
		comments:   make(map[int]newsportal.Comment),
		images:     make(map[int]newsportal.Image),
		push:       make(map[int]newsportal.PushSubscription),
	}
}

func (t tables) clone() tables {
	return tables{
		categories: maps.Clone(t.categories),
		authors:    maps.Clone(t.authors),
		articles:   maps.Clone(t.articles),
		related:    maps.Clone(t.related),
		users:      maps.Clone(t.users),
		comments:   maps.Clone(t.comments),
		images:     maps.Clone(t.images),
		push:       maps.Clone(t.push),
	}
}

// sequences are not rolled back with the tables, so an id handed out inside a
// failed transaction is never issued again.
type sequences struct {
	category, author, article, related, user, comment, image, push int
}

type state struct {
	mu  sync.RWMutex
	t   tables
	seq sequences
}

// DB keeps every entity in maps keyed by id. All methods are safe for
// concurrent use.
type DB struct {
	st   *state
	inTx bool
}

func New() *DB {
	return &DB{st: &state{t: newTables()}}
}

func (d *DB) rlock() func() {
	if d.inTx {
		return func() {}
	}
	d.st.mu.RLock()
	return d.st.mu.RUnlock
}

func (d *DB) lock() func() {
	if d.inTx {
		return func() {}
	}
	d.st.mu.Lock()
	return d.st.mu.Unlock
}

// RunInTx holds the write lock while fn runs and restores the tables when fn fails.
func (d *DB) RunInTx(_ context.Context, fn func(newsportal.Store) error) error {
	if d.inTx {
		return fn(d)
	}

	d.st.mu.Lock()
	defer d.st.mu.Unlock()

	snapshot := d.st.t.clone()
	if err := fn(&DB{st: d.st, inTx: true}); err != nil {
		d.st.t = snapshot
		return err
	}

	return nil
}

// values returns map values ordered by id, which is insertion order.
func values[T any](m map[int]T) []T {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}

	return out
}

func ptr[T any](v T) *T { return &v }

func (d *DB) Categories(_ context.Context) ([]newsportal.Category, error) {
	defer d.rlock()()
	return values(d.st.t.categories), nil
}

func (d *DB) CategoryBySlug(_ context.Context, slug string) (*newsportal.Category, error) {
	defer d.rlock()()
	for _, c := range d.st.t.categories {
		if c.Slug == slug {
			return ptr(c), nil
		}
	}

	return nil, nil
}

func (d *DB) CreateCategory(_ context.Context, c newsportal.Category) (*newsportal.Category, error) {
	defer d.lock()()
	for _, ex := range d.st.t.categories {
		if ex.Name == c.Name || ex.Slug == c.Slug {
			return nil, fmt.Errorf("category %q: %w", c.Slug, newsportal.ErrDuplicate)
		}
	}

	d.st.seq.category++
	c.ID = d.st.seq.category
	d.st.t.categories[c.ID] = c

	return ptr(c), nil
}

func (d *DB) Articles(_ context.Context, f newsportal.ArticleFilter) ([]newsportal.Article, error) {
	defer d.rlock()()
	var list newsportal.ArticleList
	for _, a := range d.st.t.articles {
		if f.Matches(a) {
			list = append(list, a)
		}
	}
	list.Sort(f.OrderBy)

	return slices.Clone(list.Page(f.Offset, f.Limit)), nil
}

func (d *DB) ArticleByID(_ context.Context, id int) (*newsportal.Article, error) {
	defer d.rlock()()
	if a, ok := d.st.t.articles[id]; ok {
		return ptr(a), nil
	}

	return nil, nil
}

func (d *DB) ArticleBySlug(_ context.Context, slug string) (*newsportal.Article, error) {
	defer d.rlock()()
	return d.articleBySlug(slug), nil
}

func (d *DB) articleBySlug(slug string) *newsportal.Article {
	for _, a := range d.st.t.articles {
		if a.Slug == slug {
			return ptr(a)
		}
	}

	return nil
}

func (d *DB) CreateArticle(_ context.Context, a newsportal.Article) (*newsportal.Article, error) {
	defer d.lock()()
	if d.articleBySlug(a.Slug) != nil {
		return nil, fmt.Errorf("article %q: %w", a.Slug, newsportal.ErrDuplicate)
	}

	d.st.seq.article++
	a.ID = d.st.seq.article
	d.st.t.articles[a.ID] = a

	return ptr(a), nil
}

func (d *DB) UpdateArticle(_ context.Context, id int, upd newsportal.ArticleUpdate) (*newsportal.Article, error) {
	defer d.lock()()
	a, ok := d.st.t.articles[id]
	if !ok {
		return nil, nil
	}

	if upd.Slug != nil && *upd.Slug != a.Slug {
		if d.articleBySlug(*upd.Slug) != nil {
			return nil, fmt.Errorf("article %q: %w", *upd.Slug, newsportal.ErrDuplicate)
		}
	}

	upd.Apply(&a)
	d.st.t.articles[id] = a

	return ptr(a), nil
}

func (d *DB) DeleteArticle(_ context.Context, id int) (bool, error) {
	defer d.lock()()
	if _, ok := d.st.t.articles[id]; !ok {
		return false, nil
	}
	delete(d.st.t.articles, id)

	return true, nil
}

func (d *DB) IncrementArticleViews(_ context.Context, id int) error {
	defer d.lock()()
	if a, ok := d.st.t.articles[id]; ok {
		a.ViewCount++
		d.st.t.articles[id] = a
	}

	return nil
}

func (d *DB) Authors(_ context.Context) ([]newsportal.Author, error) {
	defer d.rlock()()
	return values(d.st.t.authors), nil
}

func (d *DB) AuthorByID(_ context.Context, id int) (*newsportal.Author, error) {
	defer d.rlock()()
	if a, ok := d.st.t.authors[id]; ok {
		return ptr(a), nil
	}

	return nil, nil
}

func (d *DB) CreateAuthor(_ context.Context, a newsportal.Author) (*newsportal.Author, error) {
	defer d.lock()()
	d.st.seq.author++
	a.ID = d.st.seq.author
	d.st.t.authors[a.ID] = a

	return ptr(a), nil
}

func (d *DB) RelatedArticles(_ context.Context, articleID int) ([]newsportal.Article, error) {
	defer d.rlock()()
	list := []newsportal.Article{}
	for _, rs := range values(d.st.t.related) {
		if rs.ArticleID != articleID {
			continue
		}
		if a, ok := d.st.t.articles[rs.RelatedArticleID]; ok {
			list = append(list, a)
		}
	}

	return list, nil
}

func (d *DB) CreateRelatedStory(_ context.Context, rs newsportal.RelatedStory) (*newsportal.RelatedStory, error) {
	defer d.lock()()
	d.st.seq.related++
	rs.ID = d.st.seq.related
	d.st.t.related[rs.ID] = rs

	return ptr(rs), nil
}

func (d *DB) CreateUser(_ context.Context, u newsportal.User) (*newsportal.User, error) {
	defer d.lock()()
	for _, ex := range d.st.t.users {
		if ex.Email == u.Email {
			return nil, fmt.Errorf("user %q: %w", u.Email, newsportal.ErrDuplicate)
		}
	}

	d.st.seq.user++
	u.ID = d.st.seq.user
	d.st.t.users[u.ID] = u

	return ptr(u), nil
}

func (d *DB) UserByEmail(_ context.Context, email string) (*newsportal.User, error) {
	defer d.rlock()()
	for _, u := range d.st.t.users {
		if u.Email == email {
			return ptr(u), nil
		}
	}

	return nil, nil
}

func (d *DB) UserByID(_ context.Context, id int) (*newsportal.User, error) {
	defer d.rlock()()
	if u, ok := d.st.t.users[id]; ok {
		return ptr(u), nil
	}

	return nil, nil
}

func (d *DB) CreateComment(_ context.Context, c newsportal.Comment) (*newsportal.Comment, error) {
	defer d.lock()()
	d.st.seq.comment++
	c.ID = d.st.seq.comment
	d.st.t.comments[c.ID] = c

	return ptr(c), nil
}

func (d *DB) CommentsByArticle(_ context.Context, articleID int) ([]newsportal.Comment, error) {
	defer d.rlock()()
	list := newsportal.CommentList{}
	for _, c := range d.st.t.comments {
		if c.ArticleID == articleID {
			list = append(list, c)
		}
	}
	list.Sort()

	return list, nil
}

func (d *DB) DeleteComment(_ context.Context, id int) (bool, error) {
	defer d.lock()()
	if _, ok := d.st.t.comments[id]; !ok {
		return false, nil
	}
	delete(d.st.t.comments, id)

	return true, nil
}

func (d *DB) CreateImage(_ context.Context, img newsportal.Image) (*newsportal.Image, error) {
	defer d.lock()()
	d.st.seq.image++
	img.ID = d.st.seq.image
	d.st.t.images[img.ID] = img

	return ptr(img), nil
}

func (d *DB) ImagesByArticle(_ context.Context, articleID int) ([]newsportal.Image, error) {
	defer d.rlock()()
	list := newsportal.ImageList{}
	for _, img := range d.st.t.images {
		if img.ArticleID == articleID {
			list = append(list, img)
		}
	}
	list.Sort()

	return list, nil
}

func (d *DB) DeleteImage(_ context.Context, id int) (bool, error) {
	defer d.lock()()
	if _, ok := d.st.t.images[id]; !ok {
		return false, nil
	}
	delete(d.st.t.images, id)

	return true, nil
}

func clonePush(ps newsportal.PushSubscription) *newsportal.PushSubscription {
	ps.Categories = slices.Clone(ps.Categories)
	if ps.UserID != nil {
		ps.UserID = ptr(*ps.UserID)
	}

	return &ps
}

func (d *DB) pushByEndpoint(endpoint string) (newsportal.PushSubscription, bool) {
	for _, ps := range d.st.t.push {
		if ps.Endpoint == endpoint {
			return ps, true
		}
	}

	return newsportal.PushSubscription{}, false
}

func (d *DB) UpsertPushSubscription(_ context.Context, ps newsportal.PushSubscription) (*newsportal.PushSubscription, error) {
	defer d.lock()()
	if ex, ok := d.pushByEndpoint(ps.Endpoint); ok {
		ps.ID, ps.CreatedAt = ex.ID, ex.CreatedAt
	} else {
		d.st.seq.push++
		ps.ID = d.st.seq.push
	}

	stored := clonePush(ps)
	d.st.t.push[ps.ID] = *stored

	return clonePush(*stored), nil
}

func (d *DB) PushSubscriptionByEndpoint(_ context.Context, endpoint string) (*newsportal.PushSubscription, error) {
	defer d.rlock()()
	if ps, ok := d.pushByEndpoint(endpoint); ok {
		return clonePush(ps), nil
	}

	return nil, nil
}

func (d *DB) PushSubscriptions(_ context.Context, categorySlug string) ([]newsportal.PushSubscription, error) {
	defer d.rlock()()
	list := []newsportal.PushSubscription{}
	for _, ps := range values(d.st.t.push) {
		if categorySlug == "" || ps.Covers(categorySlug) {
			list = append(list, *clonePush(ps))
		}
	}

	return list, nil
}

func (d *DB) DeletePushSubscription(_ context.Context, endpoint string) (bool, error) {
	defer d.lock()()
	ps, ok := d.pushByEndpoint(endpoint)
	if !ok {
		return false, nil
	}
	delete(d.st.t.push, ps.ID)

	return true, nil
}
