package rpc

import "github.com/daniilsolovey/gnn-news/internal/newsportal"

func mapList[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
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
		IsFeatured:  a.IsFeatured,
		IsBreaking:  a.IsBreaking,
		PublishedAt: a.PublishedAt,
		ViewCount:   a.ViewCount,
	}
}

func NewArticleSummary(a newsportal.Article) ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Summary:     a.Summary,
		ImageURL:    a.ImageURL,
		AuthorID:    a.AuthorID,
		CategoryID:  a.CategoryID,
		IsFeatured:  a.IsFeatured,
		IsBreaking:  a.IsBreaking,
		PublishedAt: a.PublishedAt,
		ViewCount:   a.ViewCount,
	}
}
