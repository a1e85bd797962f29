package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/gnn-news/config"
	_ "github.com/daniilsolovey/gnn-news/docs"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.GracefulShutdown(context.Background()) })

	return a
}

func get(a *App, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNew(t *testing.T) {
	a := newTestApp(t)

	t.Run("DefaultCatalog", func(t *testing.T) {
		rec := get(a, "/api/categories")
		require.Equal(t, http.StatusOK, rec.Code)

		var categories []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
		assert.Len(t, categories, 8)

		rec = get(a, "/api/authors")
		require.Equal(t, http.StatusOK, rec.Code)

		var authors []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authors))
		assert.Len(t, authors, 7)

		rec = get(a, "/api/articles")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("GeneratedVAPIDKey", func(t *testing.T) {
		rec := get(a, "/api/push/vapidPublicKey")
		require.Equal(t, http.StatusOK, rec.Code)

		var res struct {
			PublicKey string `json:"publicKey"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

		raw, err := base64.RawURLEncoding.DecodeString(res.PublicKey)
		require.NoError(t, err)
		assert.Len(t, raw, 65)
		assert.Equal(t, byte(0x04), raw[0])
	})

	t.Run("RPC", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, rpcPath, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"news.categories"}`))
		req.Header.Set("Content-Type", "application/json")
		a.Echo.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"slug":"technology"`)

		rec = get(a, rpcPath)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ArticleBySlug")
	})

	t.Run("SwaggerDoc", func(t *testing.T) {
		rec := get(a, "/swagger/doc.json")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"/api/articles/featured"`)
	})
}

func TestNew_ConfiguredVAPIDKey(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Push.VAPIDPublicKey = "BConfigured"

	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := get(a, "/api/push/vapidPublicKey")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"publicKey":"BConfigured"}`, rec.Body.String())
}
