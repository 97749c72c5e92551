package repository

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// ListQuery is the filter and page selection for a content listing.
type ListQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
	// ViewerID, when set, fills the liked flag for that user.
	ViewerID string
}

// NewListQuery returns a query for the given page. Page numbers below 1
// become 1; limit must already be resolved by the caller.
func NewListQuery(page, limit int) ListQuery {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return ListQuery{Page: page, Limit: limit}
}

// WithCategory filters by exact category. Empty and "all" mean no filter.
func (q ListQuery) WithCategory(category string) ListQuery {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, CategoryAll) {
		category = ""
	}
	q.Category = category
	return q
}

// WithSearch filters by case-insensitive substring.
func (q ListQuery) WithSearch(search string) ListQuery {
	q.Search = strings.TrimSpace(search)
	return q
}

// WithViewer annotates rows with the viewer's liked flag.
func (q ListQuery) WithViewer(userID string) ListQuery {
	q.ViewerID = userID
	return q
}

// Offset is the number of rows skipped before the page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// CacheKey identifies the filter and page selection. ViewerID is not part of it.
func (q ListQuery) CacheKey() string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%d|%d", q.Category, q.Search, q.Page, q.Limit)))
	return hex.EncodeToString(sum[:8])
}

// likePattern escapes LIKE wildcards in s and wraps it for substring matching.
// Case folding is left to the database so both sides fold the same way.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
