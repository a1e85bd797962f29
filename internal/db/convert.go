package db

import "github.com/daniilsolovey/gnn-news/internal/newsportal"

func NewCategory(c *Category) newsportal.Category {
	return newsportal.Category{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	}
}

func NewAuthor(a *Author) newsportal.Author {
	return newsportal.Author{
		ID:       a.ID,
		Name:     a.Name,
		Bio:      a.Bio,
		ImageURL: a.ImageURL,
	}
}

func NewArticle(a *Article) newsportal.Article {
	return newsportal.Article{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Summary:     a.Summary,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		AuthorID:    a.AuthorID,
		CategoryID:  a.CategoryID,
		IsFeatured:  a.IsFeatured,
		IsBreaking:  a.IsBreaking,
		PublishedAt: a.PublishedAt,
		ViewCount:   a.ViewCount,
	}
}

func NewArticles(list []Article) []newsportal.Article {
	out := make([]newsportal.Article, len(list))
	for i := range list {
		out[i] = NewArticle(&list[i])
	}

	return out
}

func NewUser(u *User) newsportal.User {
	return newsportal.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

func NewComment(c *Comment) newsportal.Comment {
	return newsportal.Comment{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
	}
}

func NewImage(img *Image) newsportal.Image {
	return newsportal.Image{
		ID:         img.ID,
		URL:        img.URL,
		ArticleID:  img.ArticleID,
		UploadedAt: img.UploadedAt,
	}
}

func NewPushSubscription(ps *PushSubscription) newsportal.PushSubscription {
	categories := ps.Categories
	if categories == nil {
		categories = []string{}
	}

	return newsportal.PushSubscription{
		ID:         ps.ID,
		Endpoint:   ps.Endpoint,
		P256dh:     ps.P256dh,
		Auth:       ps.Auth,
		UserID:     ps.UserID,
		Categories: categories,
		CreatedAt:  ps.CreatedAt,
	}
}

func newArticleModel(a newsportal.Article) *Article {
	return &Article{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Summary:     a.Summary,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		AuthorID:    a.AuthorID,
		CategoryID:  a.CategoryID,
		IsFeatured:  a.IsFeatured,
		IsBreaking:  a.IsBreaking,
		PublishedAt: a.PublishedAt,
		ViewCount:   a.ViewCount,
	}
}

func newPushSubscriptionModel(ps newsportal.PushSubscription) *PushSubscription {
	categories := ps.Categories
	if categories == nil {
		categories = []string{}
	}

	return &PushSubscription{
		Endpoint:   ps.Endpoint,
		P256dh:     ps.P256dh,
		Auth:       ps.Auth,
		UserID:     ps.UserID,
		Categories: categories,
		CreatedAt:  ps.CreatedAt,
	}
}
