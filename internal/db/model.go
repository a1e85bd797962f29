// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Tables = struct {
	Category, Author, Article, RelatedStory, User, Comment, Image, PushSubscription struct {
		Name, Alias string
	}
}{
	Category:         struct{ Name, Alias string }{Name: "categories", Alias: "t"},
	Author:           struct{ Name, Alias string }{Name: "authors", Alias: "t"},
	Article:          struct{ Name, Alias string }{Name: "articles", Alias: "t"},
	RelatedStory:     struct{ Name, Alias string }{Name: "relatedStories", Alias: "t"},
	User:             struct{ Name, Alias string }{Name: "users", Alias: "t"},
	Comment:          struct{ Name, Alias string }{Name: "comments", Alias: "t"},
	Image:            struct{ Name, Alias string }{Name: "images", Alias: "t"},
	PushSubscription: struct{ Name, Alias string }{Name: "pushSubscriptions", Alias: "t"},
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID   int    `pg:"categoryId,pk"`
	Name string `pg:"name,use_zero"`
	Slug string `pg:"slug,use_zero"`
}

type Author struct {
	tableName struct{} `pg:"authors,alias:t,discard_unknown_columns"`

	ID       int     `pg:"authorId,pk"`
	Name     string  `pg:"name,use_zero"`
	Bio      *string `pg:"bio"`
	ImageURL *string `pg:"imageUrl"`
}

type Article struct {
	tableName struct{} `pg:"articles,alias:t,discard_unknown_columns"`

	ID          int       `pg:"articleId,pk"`
	Title       string    `pg:"title,use_zero"`
	Slug        string    `pg:"slug,use_zero"`
	Summary     string    `pg:"summary,use_zero"`
	Content     string    `pg:"content,use_zero"`
	ImageURL    string    `pg:"imageUrl,use_zero"`
	AuthorID    int       `pg:"authorId,use_zero"`
	CategoryID  int       `pg:"categoryId,use_zero"`
	IsFeatured  bool      `pg:"isFeatured,use_zero"`
	IsBreaking  bool      `pg:"isBreaking,use_zero"`
	PublishedAt time.Time `pg:"publishedAt,use_zero"`
	ViewCount   int       `pg:"viewCount,use_zero"`
}

type RelatedStory struct {
	tableName struct{} `pg:"relatedStories,alias:t,discard_unknown_columns"`

	ID               int `pg:"relatedStoryId,pk"`
	ArticleID        int `pg:"articleId,use_zero"`
	RelatedArticleID int `pg:"relatedArticleId,use_zero"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int       `pg:"userId,pk"`
	Email        string    `pg:"email,use_zero"`
	PasswordHash string    `pg:"passwordHash,use_zero"`
	Name         string    `pg:"name,use_zero"`
	IsAdmin      bool      `pg:"isAdmin,use_zero"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
}

type Comment struct {
	tableName struct{} `pg:"comments,alias:t,discard_unknown_columns"`

	ID        int       `pg:"commentId,pk"`
	Content   string    `pg:"content,use_zero"`
	UserID    int       `pg:"userId,use_zero"`
	ArticleID int       `pg:"articleId,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
}

type Image struct {
	tableName struct{} `pg:"images,alias:t,discard_unknown_columns"`

	ID         int       `pg:"imageId,pk"`
	URL        string    `pg:"url,use_zero"`
	ArticleID  int       `pg:"articleId,use_zero"`
	UploadedAt time.Time `pg:"uploadedAt,use_zero"`
}

type PushSubscription struct {
	tableName struct{} `pg:"pushSubscriptions,alias:t,discard_unknown_columns"`

	ID         int       `pg:"pushSubscriptionId,pk"`
	Endpoint   string    `pg:"endpoint,use_zero"`
	P256dh     string    `pg:"p256dh,use_zero"`
	Auth       string    `pg:"auth,use_zero"`
	UserID     *int      `pg:"userId"`
	Categories []string  `pg:"categories,array,use_zero"`
	CreatedAt  time.Time `pg:"createdAt,use_zero"`
}
