package newsportal

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrDuplicate    = errors.New("already exists")
	ErrUnauthorized = errors.New("invalid email or password")
	ErrInvalidInput = errors.New("invalid input")
)

type ArticleOrder int

const (
	OrderByPublishedAt ArticleOrder = iota
	OrderByViews
)

// ArticleFilter selects, orders and pages articles. Zero-valued fields do not filter.
type ArticleFilter struct {
	CategoryID *int
	AuthorID   *int
	Featured   bool
	Breaking   bool
	// Query is matched case-insensitively against title, summary and content.
	Query   string
	OrderBy ArticleOrder
	Limit   int
	Offset  int
}

func (f ArticleFilter) Matches(a Article) bool {
	if f.CategoryID != nil && a.CategoryID != *f.CategoryID {
		return false
	}
	if f.AuthorID != nil && a.AuthorID != *f.AuthorID {
		return false
	}
	if f.Featured && !a.IsFeatured {
		return false
	}
	if f.Breaking && !a.IsBreaking {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		return strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Summary), q) ||
			strings.Contains(strings.ToLower(a.Content), q)
	}

	return true
}

// Store persists portal entities. Lookups return nil, nil when nothing matches;
// unique constraint violations are reported as ErrDuplicate.
type Store interface {
	// RunInTx runs fn against a transactional view of the store. Changes made
	// by fn are discarded when it returns an error.
	RunInTx(ctx context.Context, fn func(Store) error) error

	Categories(ctx context.Context) ([]Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*Category, error)
	CreateCategory(ctx context.Context, c Category) (*Category, error)

	Articles(ctx context.Context, f ArticleFilter) ([]Article, error)
	ArticleByID(ctx context.Context, id int) (*Article, error)
	ArticleBySlug(ctx context.Context, slug string) (*Article, error)
	CreateArticle(ctx context.Context, a Article) (*Article, error)
	UpdateArticle(ctx context.Context, id int, upd ArticleUpdate) (*Article, error)
	DeleteArticle(ctx context.Context, id int) (bool, error)
	IncrementArticleViews(ctx context.Context, id int) error

	Authors(ctx context.Context) ([]Author, error)
	AuthorByID(ctx context.Context, id int) (*Author, error)
	CreateAuthor(ctx context.Context, a Author) (*Author, error)

	RelatedArticles(ctx context.Context, articleID int) ([]Article, error)
	CreateRelatedStory(ctx context.Context, rs RelatedStory) (*RelatedStory, error)

	CreateUser(ctx context.Context, u User) (*User, error)
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id int) (*User, error)

	CreateComment(ctx context.Context, c Comment) (*Comment, error)
	CommentsByArticle(ctx context.Context, articleID int) ([]Comment, error)
	DeleteComment(ctx context.Context, id int) (bool, error)

	CreateImage(ctx context.Context, img Image) (*Image, error)
	ImagesByArticle(ctx context.Context, articleID int) ([]Image, error)
	DeleteImage(ctx context.Context, id int) (bool, error)

	// UpsertPushSubscription inserts a subscription or, when the endpoint is
	// already known, replaces its keys, user and categories.
	UpsertPushSubscription(ctx context.Context, ps PushSubscription) (*PushSubscription, error)
	PushSubscriptionByEndpoint(ctx context.Context, endpoint string) (*PushSubscription, error)
	// PushSubscriptions lists subscriptions covering categorySlug, or all of them when it is empty.
	PushSubscriptions(ctx context.Context, categorySlug string) ([]PushSubscription, error)
	DeletePushSubscription(ctx context.Context, endpoint string) (bool, error)
}
