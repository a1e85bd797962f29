package rest

import "time"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Author struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"imageUrl"`
}

// Article flags are serialized as 0/1 integers.
type Article struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	AuthorID    int       `json:"authorId"`
	CategoryID  int       `json:"categoryId"`
	IsFeatured  int       `json:"isFeatured"`
	IsBreaking  int       `json:"isBreaking"`
	PublishedAt time.Time `json:"publishedAt"`
	ViewCount   int       `json:"viewCount"`
}

type RelatedStory struct {
	ID               int `json:"id"`
	ArticleID        int `json:"articleId"`
	RelatedArticleID int `json:"relatedArticleId"`
}

// User never carries the password hash.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	UserID    int       `json:"userId"`
	ArticleID int       `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Image struct {
	ID         int       `json:"id"`
	URL        string    `json:"url"`
	ArticleID  int       `json:"articleId"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type PushSubscription struct {
	ID         int       `json:"id"`
	Endpoint   string    `json:"endpoint"`
	P256dh     string    `json:"p256dh"`
	Auth       string    `json:"auth"`
	UserID     *int      `json:"userId"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"createdAt"`
}

type VAPIDPublicKey struct {
	PublicKey string `json:"publicKey"`
}

type SeedResult struct {
	Message string `json:"message"`
	Created int    `json:"created"`
}

type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Request bodies.

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,slug"`
}

type ArticleRequest struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"required,slug"`
	Summary     string     `json:"summary" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	ImageURL    string     `json:"imageUrl" validate:"required,url"`
	AuthorID    int        `json:"authorId" validate:"required,gt=0"`
	CategoryID  int        `json:"categoryId" validate:"required,gt=0"`
	IsFeatured  *int       `json:"isFeatured" validate:"omitempty,oneof=0 1"`
	IsBreaking  *int       `json:"isBreaking" validate:"omitempty,oneof=0 1"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// ArticleUpdateRequest is a partial article; absent fields keep their values.
type ArticleUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Slug        *string    `json:"slug" validate:"omitempty,slug"`
	Summary     *string    `json:"summary" validate:"omitempty,min=1"`
	Content     *string    `json:"content" validate:"omitempty,min=1"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
	AuthorID    *int       `json:"authorId" validate:"omitempty,gt=0"`
	CategoryID  *int       `json:"categoryId" validate:"omitempty,gt=0"`
	IsFeatured  *int       `json:"isFeatured" validate:"omitempty,oneof=0 1"`
	IsBreaking  *int       `json:"isBreaking" validate:"omitempty,oneof=0 1"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type AuthorRequest struct {
	Name     string  `json:"name" validate:"required"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
}

type RelatedStoryRequest struct {
	ArticleID        int `json:"articleId" validate:"required,gt=0"`
	RelatedArticleID int `json:"relatedArticleId" validate:"required,gt=0"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
	UserID  int    `json:"userId" validate:"required,gt=0"`
}

type ImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type PushSubscribeRequest struct {
	Endpoint   string   `json:"endpoint" validate:"required,url"`
	P256dh     string   `json:"p256dh" validate:"required"`
	Auth       string   `json:"auth" validate:"required"`
	UserID     *int     `json:"userId" validate:"omitempty,gt=0"`
	Categories []string `json:"categories" validate:"omitempty,dive,slug"`
}

type PushUnsubscribeRequest struct {
	Endpoint string `json:"endpoint" query:"endpoint" validate:"required"`
}
