package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/gnn-news/internal/newsportal"
)

type NewsHandler struct {
	uc             *newsportal.Manager
	log            *slog.Logger
	vapidPublicKey string
}

func NewNewsHandler(uc *newsportal.Manager, log *slog.Logger, vapidPublicKey string) *NewsHandler {
	return &NewsHandler{
		uc:             uc,
		log:            log,
		vapidPublicKey: vapidPublicKey,
	}
}

func pathID(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

// articles writes an article list or maps the manager error.
func (h *NewsHandler) articles(c echo.Context, list []newsportal.Article, err error, failMessage string) error {
	if errors.Is(err, newsportal.ErrInvalidInput) {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, failMessage)
	}

	return c.JSON(http.StatusOK, Map(list, NewArticle))
}

// Categories handles GET /api/categories
// @Summary Get all categories
// @Description Retrieves all categories in insertion order
// @Tags categories
// @Produce json
// @Success 200 {array} rest.Category
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/categories [get]
func (h *NewsHandler) Categories(c echo.Context) error {
	categories, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch categories")
	}

	return c.JSON(http.StatusOK, Map(categories, NewCategory))
}

// CategoryBySlug handles GET /api/categories/:slug
// @Summary Get category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} rest.Category
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /api/categories/{slug} [get]
func (h *NewsHandler) CategoryBySlug(c echo.Context) error {
	category, err := h.uc.CategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch category")
	}
	if category == nil {
		return h.handleError(c, nil, http.StatusNotFound, "Category not found")
	}

	return c.JSON(http.StatusOK, NewCategory(*category))
}

// CreateCategory handles POST /api/categories
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body rest.CategoryRequest true "Category"
// @Success 201 {object} rest.Category
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/categories [post]
func (h *NewsHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if ok, err := h.bindRequest(c, &req, "Invalid category data"); !ok {
		return err
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), req.Name, req.Slug)
	if errors.Is(err, newsportal.ErrDuplicate) {
		return h.handleError(c, err, http.StatusBadRequest, "Category already exists")
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, NewCategory(*category))
}

// Articles handles GET /api/articles
// @Summary List articles
// @Description Returns articles sorted by publishedAt DESC
// @Tags articles
// @Produce json
// @Param limit query int false "Page size (default: 10, max: 100)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles [get]
func (h *NewsHandler) Articles(c echo.Context) error {
	limit, offset, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.Articles(c.Request().Context(), limit, offset)
	return h.articles(c, list, err, "Failed to fetch articles")
}

// FeaturedArticles handles GET /api/articles/featured
// @Summary List featured articles
// @Tags articles
// @Produce json
// @Param limit query int false "Limit (default: 4)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/featured [get]
func (h *NewsHandler) FeaturedArticles(c echo.Context) error {
	limit, _, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.FeaturedArticles(c.Request().Context(), limit)
	return h.articles(c, list, err, "Failed to fetch featured articles")
}

// BreakingArticles handles GET /api/articles/breaking
// @Summary List breaking news
// @Tags articles
// @Produce json
// @Param limit query int false "Limit (default: 3)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/breaking [get]
func (h *NewsHandler) BreakingArticles(c echo.Context) error {
	limit, _, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.BreakingArticles(c.Request().Context(), limit)
	return h.articles(c, list, err, "Failed to fetch breaking news")
}

// LatestArticles handles GET /api/articles/latest
// @Summary List latest articles
// @Tags articles
// @Produce json
// @Param limit query int false "Limit (default: 5)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/latest [get]
func (h *NewsHandler) LatestArticles(c echo.Context) error {
	limit, _, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.LatestArticles(c.Request().Context(), limit)
	return h.articles(c, list, err, "Failed to fetch latest articles")
}

// MostReadArticles handles GET /api/articles/most-read
// @Summary List most read articles
// @Description Orders by view count, then by publishedAt DESC
// @Tags articles
// @Produce json
// @Param limit query int false "Limit (default: 5)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/most-read [get]
func (h *NewsHandler) MostReadArticles(c echo.Context) error {
	limit, _, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.MostReadArticles(c.Request().Context(), limit)
	return h.articles(c, list, err, "Failed to fetch most read articles")
}

// ArticlesByCategory handles GET /api/articles/category/:categoryId
// @Summary List articles of a category
// @Tags articles
// @Produce json
// @Param categoryId path int true "Category ID"
// @Param limit query int false "Page size (default: 10)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/category/{categoryId} [get]
func (h *NewsHandler) ArticlesByCategory(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid category ID")
	}

	limit, offset, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.ArticlesByCategory(c.Request().Context(), categoryID, limit, offset)
	return h.articles(c, list, err, "Failed to fetch articles by category")
}

// ArticlesByAuthor handles GET /api/articles/author/:authorId
// @Summary List articles of an author
// @Tags articles
// @Produce json
// @Param authorId path int true "Author ID"
// @Param limit query int false "Page size (default: 10)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/author/{authorId} [get]
func (h *NewsHandler) ArticlesByAuthor(c echo.Context) error {
	authorID, err := pathID(c, "authorId")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid author ID")
	}

	limit, offset, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.ArticlesByAuthor(c.Request().Context(), authorID, limit, offset)
	return h.articles(c, list, err, "Failed to fetch articles by author")
}

// SearchArticles handles GET /api/articles/search
// @Summary Search articles
// @Description Case-insensitive substring match on title, summary or content
// @Tags articles
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Limit (default: 10)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/search [get]
func (h *NewsHandler) SearchArticles(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return h.handleError(c, nil, http.StatusBadRequest, "Search query is required")
	}

	limit, _, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid pagination parameters")
	}

	list, err := h.uc.SearchArticles(c.Request().Context(), query, limit)
	return h.articles(c, list, err, "Failed to search articles")
}

// ArticleBySlug handles GET /api/articles/:slug
// @Summary Get article by slug
// @Description Every successful read increments the article view counter
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /api/articles/{slug} [get]
func (h *NewsHandler) ArticleBySlug(c echo.Context) error {
	article, err := h.uc.ViewArticle(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch article")
	}
	if article == nil {
		return h.handleError(c, nil, http.StatusNotFound, "Article not found")
	}
	articleViewsTotal.Inc()

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// CreateArticle handles POST /api/articles
// @Summary Create article
// @Tags articles
// @Accept json
// @Produce json
// @Param article body rest.ArticleRequest true "Article"
// @Success 201 {object} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles [post]
func (h *NewsHandler) CreateArticle(c echo.Context) error {
	var req ArticleRequest
	if ok, err := h.bindRequest(c, &req, "Invalid article data"); !ok {
		return err
	}

	article, err := h.uc.CreateArticle(c.Request().Context(), req.ToModel())
	if errors.Is(err, newsportal.ErrDuplicate) {
		return h.handleError(c, err, http.StatusBadRequest, "Article slug already exists")
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to create article")
	}

	return c.JSON(http.StatusCreated, NewArticle(*article))
}

// UpdateArticle handles PUT /api/articles/:id
// @Summary Update article
// @Description Merges the supplied fields onto the article
// @Tags articles
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param article body rest.ArticleUpdateRequest true "Fields to change"
// @Success 200 {object} rest.Article
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/articles/{id} [put]
func (h *NewsHandler) UpdateArticle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid article ID")
	}

	var req ArticleUpdateRequest
	if ok, err := h.bindRequest(c, &req, "Invalid article data"); !ok {
		return err
	}

	article, err := h.uc.UpdateArticle(c.Request().Context(), id, req.ToModel())
	if errors.Is(err, newsportal.ErrDuplicate) {
		return h.handleError(c, err, http.StatusBadRequest, "Article slug already exists")
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to update article")
	}
	if article == nil {
		return h.handleError(c, nil, http.StatusNotFound, "Article not found")
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// DeleteArticle handles DELETE /api/articles/:id
// @Summary Delete article
// @Tags articles
// @Param id path int true "Article ID"
// @Success 204
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/articles/{id} [delete]
func (h *NewsHandler) DeleteArticle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid article ID")
	}

	ok, err := h.uc.DeleteArticle(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to delete article")
	}
	if !ok {
		return h.handleError(c, nil, http.StatusNotFound, "Article not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// RelatedArticles handles GET /api/articles/:id/related
// @Summary List related articles
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/related [get]
func (h *NewsHandler) RelatedArticles(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid article ID")
	}

	list, err := h.uc.RelatedArticles(c.Request().Context(), id)
	return h.articles(c, list, err, "Failed to fetch related stories")
}

// CreateRelatedStory handles POST /api/related-stories
// @Summary Link two articles
// @Tags articles
// @Accept json
// @Produce json
// @Param story body rest.RelatedStoryRequest true "Link"
// @Success 201 {object} rest.RelatedStory
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/related-stories [post]
func (h *NewsHandler) CreateRelatedStory(c echo.Context) error {
	var req RelatedStoryRequest
	if ok, err := h.bindRequest(c, &req, "Invalid related story data"); !ok {
		return err
	}

	rs, err := h.uc.AddRelatedStory(c.Request().Context(), req.ArticleID, req.RelatedArticleID)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to add related story")
	}

	return c.JSON(http.StatusCreated, NewRelatedStory(*rs))
}

// Authors handles GET /api/authors
// @Summary Get all authors
// @Tags authors
// @Produce json
// @Success 200 {array} rest.Author
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/authors [get]
func (h *NewsHandler) Authors(c echo.Context) error {
	authors, err := h.uc.Authors(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch authors")
	}

	return c.JSON(http.StatusOK, Map(authors, NewAuthor))
}

// AuthorByID handles GET /api/authors/:id
// @Summary Get author by ID
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} rest.Author
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/authors/{id} [get]
func (h *NewsHandler) AuthorByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "Invalid author ID")
	}

	author, err := h.uc.AuthorByID(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch author")
	}
	if author == nil {
		return h.handleError(c, nil, http.StatusNotFound, "Author not found")
	}

	return c.JSON(http.StatusOK, NewAuthor(*author))
}

// CreateAuthor handles POST /api/authors
// @Summary Create author
// @Tags authors
// @Accept json
// @Produce json
// @Param author body rest.AuthorRequest true "Author"
// @Success 201 {object} rest.Author
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/authors [post]
func (h *NewsHandler) CreateAuthor(c echo.Context) error {
	var req AuthorRequest
	if ok, err := h.bindRequest(c, &req, "Invalid author data"); !ok {
		return err
	}

	author, err := h.uc.CreateAuthor(c.Request().Context(), req.ToModel())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to create author")
	}

	return c.JSON(http.StatusCreated, NewAuthor(*author))
}

// Seed handles POST /api/seed
// @Summary Seed demo data
// @Description Creates default categories, authors and ten demo articles. Existing slugs are skipped.
// @Tags admin
// @Produce json
// @Success 200 {object} rest.SeedResult
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/seed [post]
func (h *NewsHandler) Seed(c echo.Context) error {
	created, err := h.uc.Seed(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to seed demo data")
	}

	return c.JSON(http.StatusOK, SeedResult{
		Message: "Demo data seeded successfully",
		Created: created,
	})
}

func (h *NewsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SwaggerDoc serves the generated OpenAPI document.
func (h *NewsHandler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "API documentation is not available")
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(doc))
}
