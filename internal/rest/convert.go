package rest

import "github.com/daniilsolovey/gnn-news/internal/newsportal"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func NewCategory(c newsportal.Category) Category {
	return Category{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	}
}

func NewAuthor(a newsportal.Author) Author {
	return Author{
		ID:       a.ID,
		Name:     a.Name,
		Bio:      a.Bio,
		ImageURL: a.ImageURL,
	}
}

func NewArticle(a newsportal.Article) Article {
	return Article{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Summary:     a.Summary,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		AuthorID:    a.AuthorID,
		CategoryID:  a.CategoryID,
		IsFeatured:  boolToInt(a.IsFeatured),
		IsBreaking:  boolToInt(a.IsBreaking),
		PublishedAt: a.PublishedAt,
		ViewCount:   a.ViewCount,
	}
}

func NewRelatedStory(rs newsportal.RelatedStory) RelatedStory {
	return RelatedStory{
		ID:               rs.ID,
		ArticleID:        rs.ArticleID,
		RelatedArticleID: rs.RelatedArticleID,
	}
}

func NewUser(u newsportal.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func NewAuthUser(u newsportal.User) AuthUser {
	return AuthUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

func NewComment(c newsportal.Comment) Comment {
	return Comment{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
	}
}

func NewImage(img newsportal.Image) Image {
	return Image{
		ID:         img.ID,
		URL:        img.URL,
		ArticleID:  img.ArticleID,
		UploadedAt: img.UploadedAt,
	}
}

func NewPushSubscription(ps newsportal.PushSubscription) PushSubscription {
	categories := ps.Categories
	if categories == nil {
		categories = []string{}
	}

	return PushSubscription{
		ID:         ps.ID,
		Endpoint:   ps.Endpoint,
		P256dh:     ps.P256dh,
		Auth:       ps.Auth,
		UserID:     ps.UserID,
		Categories: categories,
		CreatedAt:  ps.CreatedAt,
	}
}

func (r ArticleRequest) ToModel() newsportal.Article {
	a := newsportal.Article{
		Title:      r.Title,
		Slug:       r.Slug,
		Summary:    r.Summary,
		Content:    r.Content,
		ImageURL:   r.ImageURL,
		AuthorID:   r.AuthorID,
		CategoryID: r.CategoryID,
		IsFeatured: r.IsFeatured != nil && *r.IsFeatured == 1,
		IsBreaking: r.IsBreaking != nil && *r.IsBreaking == 1,
	}
	if r.PublishedAt != nil {
		a.PublishedAt = *r.PublishedAt
	}

	return a
}

func flagPtr(v *int) *bool {
	if v == nil {
		return nil
	}
	b := *v == 1
	return &b
}

func (r ArticleUpdateRequest) ToModel() newsportal.ArticleUpdate {
	return newsportal.ArticleUpdate{
		Title:       r.Title,
		Slug:        r.Slug,
		Summary:     r.Summary,
		Content:     r.Content,
		ImageURL:    r.ImageURL,
		AuthorID:    r.AuthorID,
		CategoryID:  r.CategoryID,
		IsFeatured:  flagPtr(r.IsFeatured),
		IsBreaking:  flagPtr(r.IsBreaking),
		PublishedAt: r.PublishedAt,
	}
}

func (r AuthorRequest) ToModel() newsportal.Author {
	return newsportal.Author{
		Name:     r.Name,
		Bio:      r.Bio,
		ImageURL: r.ImageURL,
	}
}

func (r PushSubscribeRequest) ToModel() newsportal.PushSubscription {
	return newsportal.PushSubscription{
		Endpoint:   r.Endpoint,
		P256dh:     r.P256dh,
		Auth:       r.Auth,
		UserID:     r.UserID,
		Categories: r.Categories,
	}
}
