package newsportal

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultPageSize      = 10
	MaxPageSize          = 100
	DefaultFeaturedLimit = 4
	DefaultBreakingLimit = 3
	DefaultLatestLimit   = 5
	DefaultMostReadLimit = 5
	DefaultSearchLimit   = 10
)

type Manager struct {
	db  Store
	now func() time.Time
}

func NewNewsManager(store Store) *Manager {
	return &Manager{
		db:  store,
		now: time.Now,
	}
}

// WithClock replaces the manager clock, used for timestamps of seeded articles.
func (u *Manager) WithClock(now func() time.Time) *Manager {
	u.now = now
	return u
}

// page resolves optional limit and offset against the defaults.
// Negative values are rejected, limits above MaxPageSize are capped.
func page(limit, offset *int, defaultLimit int) (int, int, error) {
	l, o := defaultLimit, 0
	if limit != nil {
		if *limit < 0 {
			return 0, 0, fmt.Errorf("limit must be >= 0: %w", ErrInvalidInput)
		}
		l = min(*limit, MaxPageSize)
	}
	if offset != nil {
		if *offset < 0 {
			return 0, 0, fmt.Errorf("offset must be >= 0: %w", ErrInvalidInput)
		}
		o = *offset
	}

	return l, o, nil
}

func (u *Manager) articles(ctx context.Context, f ArticleFilter, limit, offset *int, defaultLimit int) ([]Article, error) {
	var err error
	f.Limit, f.Offset, err = page(limit, offset, defaultLimit)
	if err != nil {
		return nil, err
	}

	list, err := u.db.Articles(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("db get articles: %w", err)
	}

	return list, nil
}

// Articles returns a page of articles sorted by publishedAt DESC.
func (u *Manager) Articles(ctx context.Context, limit, offset *int) ([]Article, error) {
	return u.articles(ctx, ArticleFilter{}, limit, offset, DefaultPageSize)
}

func (u *Manager) ArticlesByCategory(ctx context.Context, categoryID int, limit, offset *int) ([]Article, error) {
	return u.articles(ctx, ArticleFilter{CategoryID: &categoryID}, limit, offset, DefaultPageSize)
}

func (u *Manager) ArticlesByAuthor(ctx context.Context, authorID int, limit, offset *int) ([]Article, error) {
	return u.articles(ctx, ArticleFilter{AuthorID: &authorID}, limit, offset, DefaultPageSize)
}

func (u *Manager) FeaturedArticles(ctx context.Context, limit *int) ([]Article, error) {
	return u.articles(ctx, ArticleFilter{Featured: true}, limit, nil, DefaultFeaturedLimit)
}

func (u *Manager) BreakingArticles(ctx context.Context, limit *int) ([]Article, error) {
	return u.articles(ctx, ArticleFilter{Breaking: true}, limit, nil, DefaultBreakingLimit)
}

func (u *Manager) LatestArticles(ctx context.Context, limit *int) ([]Article, error) {
	return u.articles(ctx, ArticleFilter{}, limit, nil, DefaultLatestLimit)
}

// MostReadArticles orders by view count, newest first among equal counts.
// Without recorded views the result equals LatestArticles.
func (u *Manager) MostReadArticles(ctx context.Context, limit *int) ([]Article, error) {
	return u.articles(ctx, ArticleFilter{OrderBy: OrderByViews}, limit, nil, DefaultMostReadLimit)
}

// SearchArticles matches query as a case-insensitive substring of title, summary or content.
func (u *Manager) SearchArticles(ctx context.Context, query string, limit *int) ([]Article, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", ErrInvalidInput)
	}

	return u.articles(ctx, ArticleFilter{Query: query}, limit, nil, DefaultSearchLimit)
}

func (u *Manager) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	a, err := u.db.ArticleBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("db get article by slug: %w", err)
	}

	return a, nil
}

func (u *Manager) ArticleByID(ctx context.Context, id int) (*Article, error) {
	a, err := u.db.ArticleByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get article by id: %w", err)
	}

	return a, nil
}

// ViewArticle fetches an article by slug and counts the read.
func (u *Manager) ViewArticle(ctx context.Context, slug string) (*Article, error) {
	a, err := u.ArticleBySlug(ctx, slug)
	if err != nil || a == nil {
		return a, err
	}

	if err := u.db.IncrementArticleViews(ctx, a.ID); err != nil {
		return nil, fmt.Errorf("db increment article views: %w", err)
	}
	a.ViewCount++

	return a, nil
}

// CreateArticle stores a new article; a zero PublishedAt means now.
func (u *Manager) CreateArticle(ctx context.Context, a Article) (*Article, error) {
	if a.PublishedAt.IsZero() {
		a.PublishedAt = u.now()
	}
	a.ID, a.ViewCount = 0, 0

	created, err := u.db.CreateArticle(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("db create article: %w", err)
	}

	return created, nil
}

// UpdateArticle merges upd onto the article, returning nil when it does not exist.
func (u *Manager) UpdateArticle(ctx context.Context, id int, upd ArticleUpdate) (*Article, error) {
	a, err := u.db.UpdateArticle(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("db update article: %w", err)
	}

	return a, nil
}

func (u *Manager) DeleteArticle(ctx context.Context, id int) (bool, error) {
	ok, err := u.db.DeleteArticle(ctx, id)
	if err != nil {
		return false, fmt.Errorf("db delete article: %w", err)
	}

	return ok, nil
}

// RelatedArticles resolves the outgoing related-story links of an article,
// skipping links whose target was deleted. Each target appears once even when
// it was linked more than once.
func (u *Manager) RelatedArticles(ctx context.Context, articleID int) ([]Article, error) {
	list, err := u.db.RelatedArticles(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("db get related articles: %w", err)
	}

	seen := make(map[int]struct{}, len(list))
	result := make([]Article, 0, len(list))
	for _, a := range list {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		result = append(result, a)
	}

	return result, nil
}

func (u *Manager) AddRelatedStory(ctx context.Context, articleID, relatedArticleID int) (*RelatedStory, error) {
	rs, err := u.db.CreateRelatedStory(ctx, RelatedStory{
		ArticleID:        articleID,
		RelatedArticleID: relatedArticleID,
	})
	if err != nil {
		return nil, fmt.Errorf("db create related story: %w", err)
	}

	return rs, nil
}

func (u *Manager) Categories(ctx context.Context) ([]Category, error) {
	list, err := u.db.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	return list, nil
}

func (u *Manager) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	c, err := u.db.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("db get category by slug: %w", err)
	}

	return c, nil
}

func (u *Manager) CreateCategory(ctx context.Context, name, slug string) (*Category, error) {
	c, err := u.db.CreateCategory(ctx, Category{Name: name, Slug: slug})
	if err != nil {
		return nil, fmt.Errorf("db create category: %w", err)
	}

	return c, nil
}

func (u *Manager) Authors(ctx context.Context) ([]Author, error) {
	list, err := u.db.Authors(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get authors: %w", err)
	}

	return list, nil
}

func (u *Manager) AuthorByID(ctx context.Context, id int) (*Author, error) {
	a, err := u.db.AuthorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get author by id: %w", err)
	}

	return a, nil
}

func (u *Manager) CreateAuthor(ctx context.Context, a Author) (*Author, error) {
	a.ID = 0
	created, err := u.db.CreateAuthor(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("db create author: %w", err)
	}

	return created, nil
}

// CreateComment stores a comment for an existing article. It returns nil when
// the article does not exist.
func (u *Manager) CreateComment(ctx context.Context, articleID, userID int, content string) (*Comment, error) {
	a, err := u.ArticleByID(ctx, articleID)
	if err != nil || a == nil {
		return nil, err
	}

	c, err := u.db.CreateComment(ctx, Comment{
		Content:   content,
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: u.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("db create comment: %w", err)
	}

	return c, nil
}

// Comments returns the comments of an article, newest first.
func (u *Manager) Comments(ctx context.Context, articleID int) ([]Comment, error) {
	list, err := u.db.CommentsByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("db get comments: %w", err)
	}

	return list, nil
}

func (u *Manager) DeleteComment(ctx context.Context, id int) (bool, error) {
	ok, err := u.db.DeleteComment(ctx, id)
	if err != nil {
		return false, fmt.Errorf("db delete comment: %w", err)
	}

	return ok, nil
}

// CreateImage attaches an image to an existing article. It returns nil when
// the article does not exist.
func (u *Manager) CreateImage(ctx context.Context, articleID int, url string) (*Image, error) {
	a, err := u.ArticleByID(ctx, articleID)
	if err != nil || a == nil {
		return nil, err
	}

	img, err := u.db.CreateImage(ctx, Image{
		URL:        url,
		ArticleID:  articleID,
		UploadedAt: u.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("db create image: %w", err)
	}

	return img, nil
}

func (u *Manager) Images(ctx context.Context, articleID int) ([]Image, error) {
	list, err := u.db.ImagesByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("db get images: %w", err)
	}

	return list, nil
}

func (u *Manager) DeleteImage(ctx context.Context, id int) (bool, error) {
	ok, err := u.db.DeleteImage(ctx, id)
	if err != nil {
		return false, fmt.Errorf("db delete image: %w", err)
	}

	return ok, nil
}
