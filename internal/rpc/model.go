package rpc

import "time"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Author struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Bio      *string `json:"bio,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type Article struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	AuthorID    int       `json:"authorId"`
	CategoryID  int       `json:"categoryId"`
	IsFeatured  bool      `json:"isFeatured"`
	IsBreaking  bool      `json:"isBreaking"`
	PublishedAt time.Time `json:"publishedAt"`
	ViewCount   int       `json:"viewCount"`
}

// ArticleSummary is an article without its content, used in lists.
type ArticleSummary struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	ImageURL    string    `json:"imageUrl"`
	AuthorID    int       `json:"authorId"`
	CategoryID  int       `json:"categoryId"`
	IsFeatured  bool      `json:"isFeatured"`
	IsBreaking  bool      `json:"isBreaking"`
	PublishedAt time.Time `json:"publishedAt"`
	ViewCount   int       `json:"viewCount"`
}
