package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/gnn-news/internal/memdb"
	"github.com/daniilsolovey/gnn-news/internal/newsportal"
)

const testVAPIDKey = "BTestPublicKey"

var baseTime = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) *NewsHandler {
	t.Helper()
	manager := newsportal.NewNewsManager(memdb.New()).WithClock(func() time.Time { return baseTime })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewNewsHandler(manager, logger, testVAPIDKey)
}

// newSeededRouter returns a router over a store holding the demo data.
func newSeededRouter(t *testing.T) *echo.Echo {
	t.Helper()
	e := newTestHandler(t).RegisterRoutes()
	rec := serve(e, http.MethodPost, "/api/seed", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNewsHandler_Seed(t *testing.T) {
	e := newTestHandler(t).RegisterRoutes()

	rec := serve(e, http.MethodPost, "/api/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[SeedResult](t, rec)
	assert.Equal(t, "Demo data seeded successfully", res.Message)
	assert.Equal(t, 10, res.Created)

	rec = serve(e, http.MethodPost, "/api/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[SeedResult](t, rec).Created)

	rec = serve(e, http.MethodGet, "/api/articles?limit=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]Article](t, rec), 10)
}

func TestNewsHandler_Articles(t *testing.T) {
	e := newSeededRouter(t)

	t.Run("DefaultLimit", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/articles", "")
		require.Equal(t, http.StatusOK, rec.Code)

		list := decode[[]Article](t, rec)
		require.Len(t, list, 10)
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i].PublishedAt.After(list[i-1].PublishedAt), "articles must be newest first")
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		first := decode[[]Article](t, serve(e, http.MethodGet, "/api/articles?limit=3", ""))
		second := decode[[]Article](t, serve(e, http.MethodGet, "/api/articles?limit=3&offset=3", ""))
		require.Len(t, first, 3)
		require.Len(t, second, 3)

		seen := make(map[int]struct{})
		for _, a := range first {
			seen[a.ID] = struct{}{}
		}
		for _, a := range second {
			_, dup := seen[a.ID]
			assert.False(t, dup, "article %d returned on both pages", a.ID)
		}
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		for _, target := range []string{
			"/api/articles?limit=abc",
			"/api/articles?limit=-1",
			"/api/articles?offset=-5",
			"/api/articles/featured?limit=ten",
		} {
			rec := serve(e, http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			assert.Equal(t, "Invalid pagination parameters", decode[ErrorResponse](t, rec).Message, target)
		}
	})

	t.Run("FeaturedWithLimit", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/articles/featured?limit=2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		list := decode[[]Article](t, rec)
		require.Len(t, list, 2)
		for _, a := range list {
			assert.Equal(t, 1, a.IsFeatured)
		}
		assert.Equal(t, "world-leaders-climate-summit-geneva", list[0].Slug)
	})

	t.Run("Breaking", func(t *testing.T) {
		list := decode[[]Article](t, serve(e, http.MethodGet, "/api/articles/breaking", ""))
		require.Len(t, list, 1)
		assert.Equal(t, 1, list[0].IsBreaking)
	})

	t.Run("ByCategory", func(t *testing.T) {
		categories := decode[[]Category](t, serve(e, http.MethodGet, "/api/categories", ""))
		require.NotEmpty(t, categories)

		rec := serve(e, http.MethodGet, "/api/articles/category/"+strconv.Itoa(categories[0].ID), "")
		require.Equal(t, http.StatusOK, rec.Code)
		for _, a := range decode[[]Article](t, rec) {
			assert.Equal(t, categories[0].ID, a.CategoryID)
		}

		rec = serve(e, http.MethodGet, "/api/articles/category/world", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Search", func(t *testing.T) {
		list := decode[[]Article](t, serve(e, http.MethodGet, "/api/articles/search?q=CLIMATE", ""))
		require.NotEmpty(t, list)

		rec := serve(e, http.MethodGet, "/api/articles/search?q=zzzz-no-match", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]Article](t, rec))

		rec = serve(e, http.MethodGet, "/api/articles/search", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Search query is required", decode[ErrorResponse](t, rec).Message)
	})

	t.Run("BySlugCountsViews", func(t *testing.T) {
		const slug = "trade-deal-asia-europe"
		for range 2 {
			rec := serve(e, http.MethodGet, "/api/articles/"+slug, "")
			require.Equal(t, http.StatusOK, rec.Code)
		}

		list := decode[[]Article](t, serve(e, http.MethodGet, "/api/articles/most-read?limit=1", ""))
		require.Len(t, list, 1)
		assert.Equal(t, slug, list[0].Slug)
		assert.Equal(t, 2, list[0].ViewCount)

		rec := serve(e, http.MethodGet, "/api/articles/no-such-article", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Article not found", decode[ErrorResponse](t, rec).Message)
	})
}

func TestNewsHandler_ArticleLifecycle(t *testing.T) {
	e := newSeededRouter(t)

	body := `{
		"title": "Local Election Results",
		"slug": "local-election-results",
		"summary": "Summary",
		"content": "Content",
		"imageUrl": "https://example.com/a.jpg",
		"authorId": 1,
		"categoryId": 2
	}`
	rec := serve(e, http.MethodPost, "/api/articles", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[Article](t, rec)
	assert.Equal(t, 0, created.IsFeatured)
	assert.Equal(t, 0, created.IsBreaking)
	assert.Equal(t, 0, created.ViewCount)
	assert.True(t, created.PublishedAt.Equal(baseTime))

	rec = serve(e, http.MethodPost, "/api/articles", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPut, "/api/articles/"+strconv.Itoa(created.ID), `{"isBreaking": 1, "title": "Updated"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[Article](t, rec)
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, 1, updated.IsBreaking)
	assert.Equal(t, created.Slug, updated.Slug)

	rec = serve(e, http.MethodPut, "/api/articles/9999", `{"title": "Nope"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodDelete, "/api/articles/"+strconv.Itoa(created.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(e, http.MethodDelete, "/api/articles/"+strconv.Itoa(created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodDelete, "/api/articles/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsHandler_Validation(t *testing.T) {
	e := newTestHandler(t).RegisterRoutes()

	t.Run("MissingFields", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/articles", `{"title": "Only title"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		res := decode[ErrorResponse](t, rec)
		assert.Equal(t, "Invalid article data", res.Message)

		fields := make(map[string]string)
		for _, fe := range res.Errors {
			fields[fe.Field] = fe.Message
		}
		assert.Equal(t, "Required", fields["slug"])
		assert.Equal(t, "Required", fields["authorId"])
		assert.NotContains(t, fields, "title")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/categories", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid category data", decode[ErrorResponse](t, rec).Message)
	})

	t.Run("BadSlug", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/categories", `{"name": "Local", "slug": "Local News"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		res := decode[ErrorResponse](t, rec)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "slug", res.Errors[0].Field)
	})
}

func TestNewsHandler_CategoriesAndAuthors(t *testing.T) {
	e := newTestHandler(t).RegisterRoutes()

	rec := serve(e, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = serve(e, http.MethodPost, "/api/categories", `{"name": "Local", "slug": "local"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, Category{ID: 1, Name: "Local", Slug: "local"}, decode[Category](t, rec))

	rec = serve(e, http.MethodPost, "/api/categories", `{"name": "Local", "slug": "local"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodGet, "/api/categories/local", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Local", decode[Category](t, rec).Name)

	rec = serve(e, http.MethodGet, "/api/categories/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decode[ErrorResponse](t, rec).Message)

	rec = serve(e, http.MethodPost, "/api/authors", `{"name": "Jane Doe"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	author := decode[Author](t, rec)
	assert.Nil(t, author.Bio)
	assert.Nil(t, author.ImageURL)

	rec = serve(e, http.MethodGet, "/api/authors/"+strconv.Itoa(author.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, author, decode[Author](t, rec))

	rec = serve(e, http.MethodGet, "/api/authors/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Author not found", decode[ErrorResponse](t, rec).Message)
}

func TestNewsHandler_RelatedStories(t *testing.T) {
	e := newSeededRouter(t)

	rec := serve(e, http.MethodPost, "/api/related-stories", `{"articleId": 1, "relatedArticleId": 5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodPost, "/api/related-stories", `{"articleId": 1, "relatedArticleId": 5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	list := decode[[]Article](t, serve(e, http.MethodGet, "/api/articles/1/related", ""))
	count := 0
	for _, a := range list {
		if a.ID == 5 {
			count++
		}
	}
	assert.Equal(t, 1, count)

	rec = serve(e, http.MethodDelete, "/api/articles/5", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	list = decode[[]Article](t, serve(e, http.MethodGet, "/api/articles/1/related", ""))
	for _, a := range list {
		assert.NotEqual(t, 5, a.ID)
	}

	rec = serve(e, http.MethodGet, "/api/articles/9999/related", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestNewsHandler_Auth(t *testing.T) {
	e := newTestHandler(t).RegisterRoutes()
	const account = `{"email": "Reader@Example.com", "password": "s3cret", "name": "Reader"}`

	rec := serve(e, http.MethodPost, "/api/auth/register", account)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "s3cret")
	assert.NotContains(t, rec.Body.String(), "password")

	user := decode[User](t, rec)
	assert.Equal(t, "reader@example.com", user.Email)
	assert.False(t, user.IsAdmin)

	rec = serve(e, http.MethodPost, "/api/auth/register", account)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decode[ErrorResponse](t, rec).Message)

	rec = serve(e, http.MethodPost, "/api/auth/login", `{"email": "reader@example.com", "password": "s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, AuthUser{ID: user.ID, Email: "reader@example.com", Name: "Reader"}, decode[AuthUser](t, rec))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Len(t, raw, 3)

	rec = serve(e, http.MethodPost, "/api/auth/login", `{"email": "reader@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode[ErrorResponse](t, rec).Message)
}

func TestNewsHandler_CommentsAndImages(t *testing.T) {
	e := newSeededRouter(t)

	rec := serve(e, http.MethodPost, "/api/articles/1/comments", `{"content": "Great read", "userId": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[Comment](t, rec)
	assert.Equal(t, 1, comment.ArticleID)

	rec = serve(e, http.MethodPost, "/api/articles/9999/comments", `{"content": "Lost", "userId": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Article not found", decode[ErrorResponse](t, rec).Message)

	comments := decode[[]Comment](t, serve(e, http.MethodGet, "/api/articles/1/comments", ""))
	require.Len(t, comments, 1)
	assert.Equal(t, comment, comments[0])

	rec = serve(e, http.MethodDelete, "/api/comments/"+strconv.Itoa(comment.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = serve(e, http.MethodDelete, "/api/comments/"+strconv.Itoa(comment.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodPost, "/api/articles/1/images", `{"url": "not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, "/api/articles/1/images", `{"url": "https://example.com/i.png"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	img := decode[Image](t, rec)

	images := decode[[]Image](t, serve(e, http.MethodGet, "/api/articles/1/images", ""))
	require.Len(t, images, 1)
	assert.Equal(t, img.URL, images[0].URL)

	rec = serve(e, http.MethodDelete, "/api/images/"+strconv.Itoa(img.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = serve(e, http.MethodDelete, "/api/images/"+strconv.Itoa(img.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewsHandler_Push(t *testing.T) {
	e := newTestHandler(t).RegisterRoutes()

	rec := serve(e, http.MethodGet, "/api/push/vapidPublicKey", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testVAPIDKey, decode[VAPIDPublicKey](t, rec).PublicKey)

	rec = serve(e, http.MethodPost, "/api/push/subscribe", `{"endpoint": "https://push.example/tech", "p256dh": "k", "auth": "a", "categories": ["tech"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tech := decode[PushSubscription](t, rec)

	rec = serve(e, http.MethodPost, "/api/push/subscribe", `{"endpoint": "https://push.example/all", "p256dh": "k", "auth": "a"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []string{}, decode[PushSubscription](t, rec).Categories)

	endpoints := func(target string) []string {
		var out []string
		for _, ps := range decode[[]PushSubscription](t, serve(e, http.MethodGet, target, "")) {
			out = append(out, ps.Endpoint)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"https://push.example/tech", "https://push.example/all"}, endpoints("/api/push/subscriptions?category=tech"))
	assert.Equal(t, []string{"https://push.example/all"}, endpoints("/api/push/subscriptions?category=sports"))

	rec = serve(e, http.MethodPost, "/api/push/subscribe", `{"endpoint": "https://push.example/tech", "p256dh": "k2", "auth": "a2", "categories": ["sports"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	again := decode[PushSubscription](t, rec)
	assert.Equal(t, tech.ID, again.ID)
	assert.Len(t, endpoints("/api/push/subscriptions"), 2)

	rec = serve(e, http.MethodDelete, "/api/push/unsubscribe?endpoint=https://push.example/tech", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(e, http.MethodDelete, "/api/push/unsubscribe", `{"endpoint": "https://push.example/all"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, endpoints("/api/push/subscriptions"))

	rec = serve(e, http.MethodDelete, "/api/push/unsubscribe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsHandler_Infrastructure(t *testing.T) {
	e := newTestHandler(t).RegisterRoutes()

	t.Run("Health", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
	})

	t.Run("Metrics", func(t *testing.T) {
		serve(e, http.MethodGet, "/api/categories", "")

		rec := serve(e, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/categories",status="200"}`)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/nothing-here", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not Found", decode[ErrorResponse](t, rec).Message)
	})
}
