package newsportal

import (
	"slices"
	"time"
)

type Category struct {
	ID   int
	Name string
	Slug string
}

type Author struct {
	ID       int
	Name     string
	Bio      *string
	ImageURL *string
}

type Article struct {
	ID          int
	Title       string
	Slug        string
	Summary     string
	Content     string
	ImageURL    string
	AuthorID    int
	CategoryID  int
	IsFeatured  bool
	IsBreaking  bool
	PublishedAt time.Time
	ViewCount   int
}

// ArticleUpdate is a partial article: only non-nil fields are applied.
type ArticleUpdate struct {
	Title       *string
	Slug        *string
	Summary     *string
	Content     *string
	ImageURL    *string
	AuthorID    *int
	CategoryID  *int
	IsFeatured  *bool
	IsBreaking  *bool
	PublishedAt *time.Time
}

// Apply merges the supplied fields onto a.
func (u ArticleUpdate) Apply(a *Article) {
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.Slug != nil {
		a.Slug = *u.Slug
	}
	if u.Summary != nil {
		a.Summary = *u.Summary
	}
	if u.Content != nil {
		a.Content = *u.Content
	}
	if u.ImageURL != nil {
		a.ImageURL = *u.ImageURL
	}
	if u.AuthorID != nil {
		a.AuthorID = *u.AuthorID
	}
	if u.CategoryID != nil {
		a.CategoryID = *u.CategoryID
	}
	if u.IsFeatured != nil {
		a.IsFeatured = *u.IsFeatured
	}
	if u.IsBreaking != nil {
		a.IsBreaking = *u.IsBreaking
	}
	if u.PublishedAt != nil {
		a.PublishedAt = *u.PublishedAt
	}
}

// RelatedStory is a directed link from ArticleID to RelatedArticleID.
type RelatedStory struct {
	ID               int
	ArticleID        int
	RelatedArticleID int
}

type User struct {
	ID           int
	Email        string
	PasswordHash string
	Name         string
	IsAdmin      bool
	CreatedAt    time.Time
}

type Comment struct {
	ID        int
	Content   string
	UserID    int
	ArticleID int
	CreatedAt time.Time
}

type Image struct {
	ID         int
	URL        string
	ArticleID  int
	UploadedAt time.Time
}

type PushSubscription struct {
	ID         int
	Endpoint   string
	P256dh     string
	Auth       string
	UserID     *int
	Categories []string
	CreatedAt  time.Time
}

// Covers reports whether the subscription wants notifications for the
// category slug. An empty category set means every category.
func (p PushSubscription) Covers(slug string) bool {
	return len(p.Categories) == 0 || slices.Contains(p.Categories, slug)
}
