package newsportal

import (
	"cmp"
	"slices"
)

type ArticleList []Article

// Sort orders the list newest first, or by view count when order is OrderByViews.
// Ties keep insertion order (ascending ID).
func (ll ArticleList) Sort(order ArticleOrder) {
	slices.SortFunc(ll, func(a, b Article) int {
		if order == OrderByViews {
			if c := cmp.Compare(b.ViewCount, a.ViewCount); c != 0 {
				return c
			}
		}
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Page returns the [offset, offset+limit) window of the list.
func (ll ArticleList) Page(offset, limit int) ArticleList {
	if offset >= len(ll) || limit <= 0 {
		return ArticleList{}
	}
	end := min(offset+limit, len(ll))

	return ll[offset:end]
}

type CommentList []Comment

// Sort orders comments newest first.
func (ll CommentList) Sort() {
	slices.SortFunc(ll, func(a, b Comment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

type ImageList []Image

func (ll ImageList) Sort() {
	slices.SortFunc(ll, func(a, b Image) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
