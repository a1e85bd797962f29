package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pg/pg/v10"

	"github.com/daniilsolovey/gnn-news/internal/newsportal"
)

const uniqueViolation = "23505"

var _ newsportal.Store = (*Repository)(nil)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Ping(ctx)
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Close()
	}

	return nil
}

// RunInTx runs fn inside a transaction. A repository built on a *pg.Tx is
// already transactional and runs fn directly.
func (r *Repository) RunInTx(ctx context.Context, fn func(newsportal.Store) error) error {
	db, ok := r.db.(*pg.DB)
	if !ok {
		return fn(r)
	}

	return db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(New(tx))
	})
}

// wrap converts unique constraint violations into newsportal.ErrDuplicate.
func wrap(err error, msg string) error {
	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
		return fmt.Errorf("%s: %s: %w", msg, pgErr.Field('n'), newsportal.ErrDuplicate)
	}

	return fmt.Errorf("%s: %w", msg, err)
}

// one selects a single row into m, reporting false when nothing matched.
func (r *Repository) one(ctx context.Context, m any, where string, params ...any) (bool, error) {
	err := r.db.ModelContext(ctx, m).Where(where, params...).Select()
	if errors.Is(err, pg.ErrNoRows) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}

func (r *Repository) delete(ctx context.Context, model any, where string, params ...any) (bool, error) {
	res, err := r.db.ModelContext(ctx, model).Where(where, params...).Delete()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *Repository) Categories(ctx context.Context) ([]newsportal.Category, error) {
	var categories []Category
	err := r.db.ModelContext(ctx, &categories).
		OrderExpr(`"t"."categoryId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	out := make([]newsportal.Category, len(categories))
	for i := range categories {
		out[i] = NewCategory(&categories[i])
	}

	return out, nil
}

func (r *Repository) CategoryBySlug(ctx context.Context, slug string) (*newsportal.Category, error) {
	c := &Category{}
	ok, err := r.one(ctx, c, `"t"."slug" = ?`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	} else if !ok {
		return nil, nil
	}

	category := NewCategory(c)
	return &category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c newsportal.Category) (*newsportal.Category, error) {
	m := &Category{Name: c.Name, Slug: c.Slug}
	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return nil, wrap(err, "failed to insert category")
	}

	category := NewCategory(m)
	return &category, nil
}

// Articles filters and pages articles, sorted by publishedAt DESC with ties broken by id.
func (r *Repository) Articles(ctx context.Context, f newsportal.ArticleFilter) ([]newsportal.Article, error) {
	// go-pg treats LIMIT 0 as no limit
	if f.Limit <= 0 {
		return []newsportal.Article{}, nil
	}

	var articles []Article
	query := r.db.ModelContext(ctx, &articles)

	if f.CategoryID != nil {
		query = query.Where(`"t"."categoryId" = ?`, *f.CategoryID)
	}

	if f.AuthorID != nil {
		query = query.Where(`"t"."authorId" = ?`, *f.AuthorID)
	}

	if f.Featured {
		query = query.Where(`"t"."isFeatured"`)
	}

	if f.Breaking {
		query = query.Where(`"t"."isBreaking"`)
	}

	if f.Query != "" {
		pattern := "%" + likeEscaper.Replace(f.Query) + "%"
		query = query.Where(`("t"."title" ILIKE ?0 OR "t"."summary" ILIKE ?0 OR "t"."content" ILIKE ?0)`, pattern)
	}

	if f.OrderBy == newsportal.OrderByViews {
		query = query.OrderExpr(`"t"."viewCount" DESC`)
	}

	err := query.
		OrderExpr(`"t"."publishedAt" DESC`).
		OrderExpr(`"t"."articleId" ASC`).
		Limit(f.Limit).
		Offset(f.Offset).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	return NewArticles(articles), nil
}

func (r *Repository) articleBy(ctx context.Context, where string, param any) (*newsportal.Article, error) {
	m := &Article{}
	ok, err := r.one(ctx, m, where, param)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	} else if !ok {
		return nil, nil
	}

	a := NewArticle(m)
	return &a, nil
}

func (r *Repository) ArticleByID(ctx context.Context, id int) (*newsportal.Article, error) {
	return r.articleBy(ctx, `"t"."articleId" = ?`, id)
}

func (r *Repository) ArticleBySlug(ctx context.Context, slug string) (*newsportal.Article, error) {
	return r.articleBy(ctx, `"t"."slug" = ?`, slug)
}

func (r *Repository) CreateArticle(ctx context.Context, a newsportal.Article) (*newsportal.Article, error) {
	m := newArticleModel(a)
	m.ID = 0
	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return nil, wrap(err, "failed to insert article")
	}

	created := NewArticle(m)
	return &created, nil
}

func (r *Repository) UpdateArticle(ctx context.Context, id int, upd newsportal.ArticleUpdate) (*newsportal.Article, error) {
	a, err := r.ArticleByID(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}

	upd.Apply(a)
	if _, err := r.db.ModelContext(ctx, newArticleModel(*a)).
		ExcludeColumn("viewCount").
		WherePK().
		Update(); err != nil {
		return nil, wrap(err, "failed to update article")
	}

	return a, nil
}

func (r *Repository) DeleteArticle(ctx context.Context, id int) (bool, error) {
	ok, err := r.delete(ctx, (*Article)(nil), `"articleId" = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}

	return ok, nil
}

func (r *Repository) IncrementArticleViews(ctx context.Context, id int) error {
	_, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Set(`"viewCount" = "viewCount" + 1`).
		Where(`"articleId" = ?`, id).
		Update()
	if err != nil {
		return fmt.Errorf("failed to increment article views: %w", err)
	}

	return nil
}

func (r *Repository) Authors(ctx context.Context) ([]newsportal.Author, error) {
	var authors []Author
	err := r.db.ModelContext(ctx, &authors).
		OrderExpr(`"t"."authorId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}

	out := make([]newsportal.Author, len(authors))
	for i := range authors {
		out[i] = NewAuthor(&authors[i])
	}

	return out, nil
}

func (r *Repository) AuthorByID(ctx context.Context, id int) (*newsportal.Author, error) {
	m := &Author{}
	ok, err := r.one(ctx, m, `"t"."authorId" = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	} else if !ok {
		return nil, nil
	}

	a := NewAuthor(m)
	return &a, nil
}

func (r *Repository) CreateAuthor(ctx context.Context, a newsportal.Author) (*newsportal.Author, error) {
	m := &Author{Name: a.Name, Bio: a.Bio, ImageURL: a.ImageURL}
	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert author: %w", err)
	}

	created := NewAuthor(m)
	return &created, nil
}

// RelatedArticles joins the outgoing links of articleID to their target
// articles; links to deleted articles drop out of the join.
func (r *Repository) RelatedArticles(ctx context.Context, articleID int) ([]newsportal.Article, error) {
	var articles []Article
	err := r.db.ModelContext(ctx, &articles).
		Join(`JOIN ? AS "rs" ON "rs"."relatedArticleId" = "t"."articleId"`, pg.Ident(Tables.RelatedStory.Name)).
		Where(`"rs"."articleId" = ?`, articleID).
		OrderExpr(`"rs"."relatedStoryId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query related articles: %w", err)
	}

	return NewArticles(articles), nil
}

func (r *Repository) CreateRelatedStory(ctx context.Context, rs newsportal.RelatedStory) (*newsportal.RelatedStory, error) {
	m := &RelatedStory{ArticleID: rs.ArticleID, RelatedArticleID: rs.RelatedArticleID}
	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert related story: %w", err)
	}

	return &newsportal.RelatedStory{
		ID:               m.ID,
		ArticleID:        m.ArticleID,
		RelatedArticleID: m.RelatedArticleID,
	}, nil
}

func (r *Repository) CreateUser(ctx context.Context, u newsportal.User) (*newsportal.User, error) {
	m := &User{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return nil, wrap(err, "failed to insert user")
	}

	created := NewUser(m)
	return &created, nil
}

func (r *Repository) userBy(ctx context.Context, where string, param any) (*newsportal.User, error) {
	m := &User{}
	ok, err := r.one(ctx, m, where, param)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	} else if !ok {
		return nil, nil
	}

	u := NewUser(m)
	return &u, nil
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (*newsportal.User, error) {
	return r.userBy(ctx, `"t"."email" = ?`, email)
}

func (r *Repository) UserByID(ctx context.Context, id int) (*newsportal.User, error) {
	return r.userBy(ctx, `"t"."userId" = ?`, id)
}

func (r *Repository) CreateComment(ctx context.Context, c newsportal.Comment) (*newsportal.Comment, error) {
	m := &Comment{
		Content:   c.Content,
		UserID:    c.UserID,
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
	}
	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	created := NewComment(m)
	return &created, nil
}

func (r *Repository) CommentsByArticle(ctx context.Context, articleID int) ([]newsportal.Comment, error) {
	var comments []Comment
	err := r.db.ModelContext(ctx, &comments).
		Where(`"t"."articleId" = ?`, articleID).
		OrderExpr(`"t"."createdAt" DESC`).
		OrderExpr(`"t"."commentId" DESC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	out := make([]newsportal.Comment, len(comments))
	for i := range comments {
		out[i] = NewComment(&comments[i])
	}

	return out, nil
}

func (r *Repository) DeleteComment(ctx context.Context, id int) (bool, error) {
	ok, err := r.delete(ctx, (*Comment)(nil), `"commentId" = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}

	return ok, nil
}

func (r *Repository) CreateImage(ctx context.Context, img newsportal.Image) (*newsportal.Image, error) {
	m := &Image{
		URL:        img.URL,
		ArticleID:  img.ArticleID,
		UploadedAt: img.UploadedAt,
	}
	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert image: %w", err)
	}

	created := NewImage(m)
	return &created, nil
}

func (r *Repository) ImagesByArticle(ctx context.Context, articleID int) ([]newsportal.Image, error) {
	var images []Image
	err := r.db.ModelContext(ctx, &images).
		Where(`"t"."articleId" = ?`, articleID).
		OrderExpr(`"t"."uploadedAt" DESC`).
		OrderExpr(`"t"."imageId" DESC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}

	out := make([]newsportal.Image, len(images))
	for i := range images {
		out[i] = NewImage(&images[i])
	}

	return out, nil
}

func (r *Repository) DeleteImage(ctx context.Context, id int) (bool, error) {
	ok, err := r.delete(ctx, (*Image)(nil), `"imageId" = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete image: %w", err)
	}

	return ok, nil
}

// UpsertPushSubscription relies on the unique endpoint index; the stored id and
// createdAt survive a re-subscription.
func (r *Repository) UpsertPushSubscription(ctx context.Context, ps newsportal.PushSubscription) (*newsportal.PushSubscription, error) {
	m := newPushSubscriptionModel(ps)
	_, err := r.db.ModelContext(ctx, m).
		OnConflict(`("endpoint") DO UPDATE`).
		Set(`"p256dh" = EXCLUDED."p256dh"`).
		Set(`"auth" = EXCLUDED."auth"`).
		Set(`"userId" = EXCLUDED."userId"`).
		Set(`"categories" = EXCLUDED."categories"`).
		Returning("*").
		Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert push subscription: %w", err)
	}

	sub := NewPushSubscription(m)
	return &sub, nil
}

func (r *Repository) PushSubscriptionByEndpoint(ctx context.Context, endpoint string) (*newsportal.PushSubscription, error) {
	m := &PushSubscription{}
	ok, err := r.one(ctx, m, `"t"."endpoint" = ?`, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get push subscription: %w", err)
	} else if !ok {
		return nil, nil
	}

	sub := NewPushSubscription(m)
	return &sub, nil
}

func (r *Repository) PushSubscriptions(ctx context.Context, categorySlug string) ([]newsportal.PushSubscription, error) {
	var subs []PushSubscription
	query := r.db.ModelContext(ctx, &subs)

	if categorySlug != "" {
		query = query.Where(`(cardinality("t"."categories") = 0 OR ? = ANY("t"."categories"))`, categorySlug)
	}

	err := query.
		OrderExpr(`"t"."pushSubscriptionId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query push subscriptions: %w", err)
	}

	out := make([]newsportal.PushSubscription, len(subs))
	for i := range subs {
		out[i] = NewPushSubscription(&subs[i])
	}

	return out, nil
}

func (r *Repository) DeletePushSubscription(ctx context.Context, endpoint string) (bool, error) {
	ok, err := r.delete(ctx, (*PushSubscription)(nil), `"endpoint" = ?`, endpoint)
	if err != nil {
		return false, fmt.Errorf("failed to delete push subscription: %w", err)
	}

	return ok, nil
}
