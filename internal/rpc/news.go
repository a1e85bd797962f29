package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/gnn-news/internal/newsportal"
)

//go:generate zenrpc

var errInvalidPage = zenrpc.NewStringError(400, "invalid pagination parameters")

// NewsService is a read-only view of the news catalog.
type NewsService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewNewsService(manager *newsportal.Manager) *NewsService {
	return &NewsService{manager: manager}
}

func summaries(list []newsportal.Article, err error) ([]ArticleSummary, error) {
	if errors.Is(err, newsportal.ErrInvalidInput) {
		return nil, errInvalidPage
	} else if err != nil {
		return nil, err
	}

	return mapList(list, NewArticleSummary), nil
}

// Categories returns all categories in insertion order.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s NewsService) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return mapList(categories, NewCategory), nil
}

// Authors returns all authors.
//
//zenrpc:return list of authors
//zenrpc:500 internal server error
func (s NewsService) Authors(ctx context.Context) ([]Author, error) {
	authors, err := s.manager.Authors(ctx)
	if err != nil {
		return nil, err
	}

	return mapList(authors, NewAuthor), nil
}

// Articles returns article summaries sorted by publishedAt DESC.
//
//zenrpc:limit=10 page size, at most 100
//zenrpc:offset=0 number of articles to skip
//zenrpc:return list of article summaries
//zenrpc:400 invalid pagination parameters
//zenrpc:500 internal server error
func (s NewsService) Articles(ctx context.Context, limit, offset *int) ([]ArticleSummary, error) {
	return summaries(s.manager.Articles(ctx, limit, offset))
}

// Featured returns featured article summaries.
//
//zenrpc:limit=4 number of articles
//zenrpc:return list of article summaries
//zenrpc:400 invalid pagination parameters
//zenrpc:500 internal server error
func (s NewsService) Featured(ctx context.Context, limit *int) ([]ArticleSummary, error) {
	return summaries(s.manager.FeaturedArticles(ctx, limit))
}

// Search finds articles whose title, summary or content contains query, ignoring case.
//
//zenrpc:query search text
//zenrpc:limit=10 number of articles
//zenrpc:return list of article summaries
//zenrpc:400 query is required
//zenrpc:500 internal server error
func (s NewsService) Search(ctx context.Context, query string, limit *int) ([]ArticleSummary, error) {
	if query == "" {
		return nil, zenrpc.NewStringError(400, "query is required")
	}

	return summaries(s.manager.SearchArticles(ctx, query, limit))
}

// ArticleBySlug returns a single article with content. Unlike the REST read it
// does not count a view.
//
//zenrpc:slug article slug
//zenrpc:return article with content
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s NewsService) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	a, err := s.manager.ArticleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if a == nil {
		return nil, zenrpc.NewStringError(404, "article not found")
	}

	article := NewArticle(*a)
	return &article, nil
}
