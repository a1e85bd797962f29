package memdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daniilsolovey/gnn-news/internal/newsportal"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

func article(slug string, age time.Duration) newsportal.Article {
	return newsportal.Article{
		Title:       slug,
		Slug:        slug,
		Summary:     "summary of " + slug,
		Content:     "content of " + slug,
		AuthorID:    1,
		CategoryID:  1,
		PublishedAt: baseTime.Add(-age),
	}
}

func TestDB_Articles(t *testing.T) {
	ctx := context.Background()
	db := New()

	for _, a := range []newsportal.Article{
		article("old", 48*time.Hour),
		article("new", 0),
		article("mid", 24*time.Hour),
		article("mid-twin", 24*time.Hour),
	} {
		_, err := db.CreateArticle(ctx, a)
		require.NoError(t, err)
	}

	slugs := func(list []newsportal.Article) []string {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.Slug)
		}
		return out
	}

	t.Run("SortedByPublishedAtThenID", func(t *testing.T) {
		list, err := db.Articles(ctx, newsportal.ArticleFilter{Limit: 10})
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"new", "mid", "mid-twin", "old"}, slugs(list)); diff != "" {
			t.Errorf("articles order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Window", func(t *testing.T) {
		list, err := db.Articles(ctx, newsportal.ArticleFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"mid", "mid-twin"}, slugs(list))
	})

	t.Run("OffsetPastEnd", func(t *testing.T) {
		list, err := db.Articles(ctx, newsportal.ArticleFilter{Limit: 2, Offset: 10})
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("ZeroLimit", func(t *testing.T) {
		list, err := db.Articles(ctx, newsportal.ArticleFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("OrderByViews", func(t *testing.T) {
		require.NoError(t, db.IncrementArticleViews(ctx, 1))
		require.NoError(t, db.IncrementArticleViews(ctx, 1))
		require.NoError(t, db.IncrementArticleViews(ctx, 3))

		list, err := db.Articles(ctx, newsportal.ArticleFilter{OrderBy: newsportal.OrderByViews, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"old", "mid", "new", "mid-twin"}, slugs(list))
	})

	t.Run("SearchIsCaseInsensitive", func(t *testing.T) {
		list, err := db.Articles(ctx, newsportal.ArticleFilter{Query: "CONTENT OF MID", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"mid", "mid-twin"}, slugs(list))
	})
}

func TestDB_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	db := New()

	_, err := db.CreateCategory(ctx, newsportal.Category{Name: "World", Slug: "world"})
	require.NoError(t, err)

	_, err = db.CreateCategory(ctx, newsportal.Category{Name: "World", Slug: "world-2"})
	assert.ErrorIs(t, err, newsportal.ErrDuplicate)
	_, err = db.CreateCategory(ctx, newsportal.Category{Name: "Planet", Slug: "world"})
	assert.ErrorIs(t, err, newsportal.ErrDuplicate)

	first, err := db.CreateArticle(ctx, article("a", 0))
	require.NoError(t, err)
	_, err = db.CreateArticle(ctx, article("b", 0))
	require.NoError(t, err)

	_, err = db.CreateArticle(ctx, article("a", time.Hour))
	assert.ErrorIs(t, err, newsportal.ErrDuplicate)

	taken := "b"
	_, err = db.UpdateArticle(ctx, first.ID, newsportal.ArticleUpdate{Slug: &taken})
	assert.ErrorIs(t, err, newsportal.ErrDuplicate)

	same := "a"
	updated, err := db.UpdateArticle(ctx, first.ID, newsportal.ArticleUpdate{Slug: &same})
	require.NoError(t, err)
	assert.Equal(t, "a", updated.Slug)

	_, err = db.CreateUser(ctx, newsportal.User{Email: "x@example.com"})
	require.NoError(t, err)
	_, err = db.CreateUser(ctx, newsportal.User{Email: "x@example.com"})
	assert.ErrorIs(t, err, newsportal.ErrDuplicate)
}

func TestDB_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	db := New()

	a, err := db.CreateArticle(ctx, article("first", 0))
	require.NoError(t, err)

	ok, err := db.DeleteArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.DeleteArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	b, err := db.CreateArticle(ctx, article("second", 0))
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
}

func TestDB_RunInTx(t *testing.T) {
	ctx := context.Background()
	db := New()
	errBoom := errors.New("boom")

	err := db.RunInTx(ctx, func(s newsportal.Store) error {
		if _, err := s.CreateCategory(ctx, newsportal.Category{Name: "World", Slug: "world"}); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	list, err := db.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "failed transaction must not leave rows")

	err = db.RunInTx(ctx, func(s newsportal.Store) error {
		_, err := s.CreateCategory(ctx, newsportal.Category{Name: "World", Slug: "world"})
		return err
	})
	require.NoError(t, err)

	list, err = db.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ID, "rolled back id must not be reused")
}

func TestDB_RelatedArticles(t *testing.T) {
	ctx := context.Background()
	db := New()

	a, err := db.CreateArticle(ctx, article("a", 0))
	require.NoError(t, err)
	b, err := db.CreateArticle(ctx, article("b", 0))
	require.NoError(t, err)
	c, err := db.CreateArticle(ctx, article("c", 0))
	require.NoError(t, err)

	for _, to := range []int{b.ID, c.ID, b.ID} {
		_, err := db.CreateRelatedStory(ctx, newsportal.RelatedStory{ArticleID: a.ID, RelatedArticleID: to})
		require.NoError(t, err)
	}

	list, err := db.RelatedArticles(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3, "duplicate edges are kept")

	_, err = db.DeleteArticle(ctx, b.ID)
	require.NoError(t, err)

	list, err = db.RelatedArticles(ctx, a.ID)
	require.NoError(t, err)
	if diff := cmp.Diff([]newsportal.Article{*c}, list); diff != "" {
		t.Errorf("related mismatch (-want +got):\n%s", diff)
	}

	list, err = db.RelatedArticles(ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDB_CommentsAndImagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := New()

	for i, age := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		_, err := db.CreateComment(ctx, newsportal.Comment{ArticleID: 1, UserID: 1, Content: string(rune('a' + i)), CreatedAt: baseTime.Add(-age)})
		require.NoError(t, err)
		_, err = db.CreateImage(ctx, newsportal.Image{ArticleID: 1, URL: string(rune('a' + i)), UploadedAt: baseTime.Add(-age)})
		require.NoError(t, err)
	}
	_, err := db.CreateComment(ctx, newsportal.Comment{ArticleID: 2, Content: "other", CreatedAt: baseTime})
	require.NoError(t, err)

	comments, err := db.CommentsByArticle(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{comments[0].Content, comments[1].Content, comments[2].Content})

	images, err := db.ImagesByArticle(ctx, 1)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "b", images[0].URL)

	ok, err := db.DeleteImage(ctx, images[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.DeleteComment(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDB_PushSubscriptions(t *testing.T) {
	ctx := context.Background()
	db := New()

	first, err := db.UpsertPushSubscription(ctx, newsportal.PushSubscription{
		Endpoint:   "https://push.example/1",
		P256dh:     "k1",
		Auth:       "a1",
		Categories: []string{"sports"},
		CreatedAt:  baseTime,
	})
	require.NoError(t, err)

	_, err = db.UpsertPushSubscription(ctx, newsportal.PushSubscription{
		Endpoint:   "https://push.example/2",
		Categories: []string{},
		CreatedAt:  baseTime,
	})
	require.NoError(t, err)

	t.Run("UpsertKeepsIDAndCreatedAt", func(t *testing.T) {
		upd, err := db.UpsertPushSubscription(ctx, newsportal.PushSubscription{
			Endpoint:   "https://push.example/1",
			P256dh:     "k2",
			Auth:       "a2",
			Categories: []string{"world"},
			CreatedAt:  baseTime.Add(time.Hour),
		})
		require.NoError(t, err)

		want := &newsportal.PushSubscription{
			ID:         first.ID,
			Endpoint:   "https://push.example/1",
			P256dh:     "k2",
			Auth:       "a2",
			Categories: []string{"world"},
			CreatedAt:  baseTime,
		}
		if diff := cmp.Diff(want, upd); diff != "" {
			t.Errorf("upsert mismatch (-want +got):\n%s", diff)
		}

		all, err := db.PushSubscriptions(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("CategoryFilter", func(t *testing.T) {
		list, err := db.PushSubscriptions(ctx, "world")
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = db.PushSubscriptions(ctx, "sports")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "https://push.example/2", list[0].Endpoint)
	})

	t.Run("Delete", func(t *testing.T) {
		ok, err := db.DeletePushSubscription(ctx, "https://push.example/2")
		require.NoError(t, err)
		assert.True(t, ok)

		ps, err := db.PushSubscriptionByEndpoint(ctx, "https://push.example/2")
		require.NoError(t, err)
		assert.Nil(t, ps)

		ok, err = db.DeletePushSubscription(ctx, "https://push.example/2")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
