// Package service holds the business operations behind the HTTP handlers.
package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"aihub/internal/models"
	"aihub/internal/repository"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// NewPagination computes pages as ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// ListResult is a page of items with its pagination block.
type ListResult[T any] struct {
	Items      []*T       `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// List cache resources, one per listing endpoint.
const (
	ResourceNews      = "news"
	ResourceVideos    = "videos"
	ResourceImages    = "images"
	ResourceCommunity = "community"
)

// resourceFor maps a target kind to the listing that shows its counts.
// Comments are not listed through the cache.
func resourceFor(kind models.TargetKind) string {
	switch kind {
	case models.TargetNews:
		return ResourceNews
	case models.TargetVideo:
		return ResourceVideos
	case models.TargetImage:
		return ResourceImages
	case models.TargetPost:
		return ResourceCommunity
	}
	return ""
}

// storeError turns a repository error into an AppError.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if repository.IsForeignKeyViolation(err) {
		return models.NewValidationError("Unknown author or target")
	}
	return models.NewInternalError(err)
}

// field is a named input value checked by requireFields.
type field struct {
	name  string
	value string
}

// requireFields reports every blank field in one validation error.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return models.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
}

func maxLen(name, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return models.NewValidationError(fmt.Sprintf("%s too long (max %d characters)", name, limit))
	}
	return nil
}

const (
	maxTags      = 20
	maxTagLength = 50
)

// normalizeTags trims tags, drops empty and duplicate entries and never returns nil.
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(t)]; dup {
			continue
		}
		if err := maxLen("Tag", t, maxTagLength); err != nil {
			return nil, err
		}
		seen[strings.ToLower(t)] = struct{}{}
		out = append(out, t)
	}
	if len(out) > maxTags {
		return nil, models.NewValidationError(fmt.Sprintf("Too many tags (max %d)", maxTags))
	}
	return out, nil
}

// SplitTags parses a comma separated tag list.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
