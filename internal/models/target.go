package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// TargetKind names a kind of item that can be liked or commented on.
type TargetKind string

const (
	TargetNews    TargetKind = "news"
	TargetVideo   TargetKind = "video"
	TargetImage   TargetKind = "image"
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target identifies exactly one likeable or commentable item.
type Target struct {
	Kind TargetKind
	ID   string
}

// ParseTarget resolves a type token and item id into a Target. Unknown tokens
// and blank ids are validation errors, so no query or write can be built from them.
func ParseTarget(kind, id string) (Target, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Target{}, NewValidationError("itemId is required")
	}
	switch k := TargetKind(strings.ToLower(strings.TrimSpace(kind))); k {
	case TargetNews, TargetVideo, TargetImage, TargetPost, TargetComment:
		return Target{Kind: k, ID: id}, nil
	default:
		return Target{}, NewValidationError(fmt.Sprintf("Invalid type %q", kind))
	}
}

// ParseCommentTarget is ParseTarget restricted to commentable kinds.
func ParseCommentTarget(kind, id string) (Target, error) {
	t, err := ParseTarget(kind, id)
	if err != nil {
		return Target{}, err
	}
	if !t.Commentable() {
		return Target{}, NewValidationError(fmt.Sprintf("Invalid type %q", kind))
	}
	return t, nil
}

// Column is the foreign key column that references the target.
func (t Target) Column() string {
	switch t.Kind {
	case TargetNews:
		return "news_id"
	case TargetVideo:
		return "video_id"
	case TargetImage:
		return "image_id"
	case TargetPost:
		return "post_id"
	case TargetComment:
		return "comment_id"
	}
	panic(fmt.Sprintf("models: unknown target kind %q", t.Kind))
}

// Key is the "<kind>:<id>" value stored in likes.target_key.
func (t Target) Key() string {
	return string(t.Kind) + ":" + t.ID
}

// Commentable reports whether comments may be attached to the target.
func (t Target) Commentable() bool {
	return t.Kind != TargetComment
}

// ApplyToLike sets the single foreign key for the target on l.
func (t Target) ApplyToLike(l *Like) {
	l.NewsID, l.VideoID, l.ImageID, l.PostID, l.CommentID = nil, nil, nil, nil, nil
	id := t.ID
	switch t.Kind {
	case TargetNews:
		l.NewsID = &id
	case TargetVideo:
		l.VideoID = &id
	case TargetImage:
		l.ImageID = &id
	case TargetPost:
		l.PostID = &id
	case TargetComment:
		l.CommentID = &id
	}
	l.TargetKey = t.Key()
}

// ApplyToComment sets the single foreign key for the target on c.
func (t Target) ApplyToComment(c *Comment) error {
	c.NewsID, c.VideoID, c.ImageID, c.PostID = nil, nil, nil, nil
	id := t.ID
	switch t.Kind {
	case TargetNews:
		c.NewsID = &id
	case TargetVideo:
		c.VideoID = &id
	case TargetImage:
		c.ImageID = &id
	case TargetPost:
		c.PostID = &id
	default:
		return NewValidationError(fmt.Sprintf("Cannot comment on %s", t.Kind))
	}
	return nil
}

// Scope filters a query down to rows referencing the target.
func (t Target) Scope() func(*gorm.DB) *gorm.DB {
	col := t.Column()
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(col+" = ?", t.ID)
	}
}
