package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	apiPrefix   = "/api"
	healthPath  = "/health"
	metricsPath = "/metrics"
	swaggerPath = "/swagger/doc.json"

	// authRateLimit is the number of auth requests per second allowed per client IP.
	authRateLimit = 5
)

// RegisterRoutes builds the echo router with all API, health, metrics and docs routes.
func (h *NewsHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = h.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(h.requestLogger())
	e.Use(metricsMiddleware)

	e.GET(healthPath, h.Health)
	e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))
	e.GET(swaggerPath, h.SwaggerDoc)

	h.registerAPIRoutes(e.Group(apiPrefix))

	return e
}

func (h *NewsHandler) registerAPIRoutes(g *echo.Group) {
	g.GET("/categories", h.Categories)
	g.GET("/categories/:slug", h.CategoryBySlug)
	g.POST("/categories", h.CreateCategory)

	g.GET("/articles", h.Articles)
	g.GET("/articles/featured", h.FeaturedArticles)
	g.GET("/articles/breaking", h.BreakingArticles)
	g.GET("/articles/latest", h.LatestArticles)
	g.GET("/articles/most-read", h.MostReadArticles)
	g.GET("/articles/search", h.SearchArticles)
	g.GET("/articles/category/:categoryId", h.ArticlesByCategory)
	g.GET("/articles/author/:authorId", h.ArticlesByAuthor)
	g.GET("/articles/:slug", h.ArticleBySlug)
	g.POST("/articles", h.CreateArticle)
	g.PUT("/articles/:id", h.UpdateArticle)
	g.DELETE("/articles/:id", h.DeleteArticle)
	g.GET("/articles/:id/related", h.RelatedArticles)
	g.POST("/related-stories", h.CreateRelatedStory)

	g.GET("/authors", h.Authors)
	g.GET("/authors/:id", h.AuthorByID)
	g.POST("/authors", h.CreateAuthor)

	auth := g.Group("/auth", middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(authRateLimit))))
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	g.GET("/articles/:id/comments", h.Comments)
	g.POST("/articles/:id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)

	g.GET("/articles/:id/images", h.Images)
	g.POST("/articles/:id/images", h.CreateImage)
	g.DELETE("/images/:id", h.DeleteImage)

	g.GET("/push/vapidPublicKey", h.VAPIDPublicKey)
	g.POST("/push/subscribe", h.Subscribe)
	g.DELETE("/push/unsubscribe", h.Unsubscribe)
	g.GET("/push/subscriptions", h.PushSubscriptions)

	g.POST("/seed", h.Seed)
}

func (h *NewsHandler) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			h.log.LogAttrs(context.Background(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("remote_addr", v.RemoteIP),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}
