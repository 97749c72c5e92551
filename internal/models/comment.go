package models

// Comment belongs to exactly one commentable target and optionally to a
// parent comment. Only one level of nesting is kept.
type Comment struct {
	Base
	Content  string  `gorm:"type:text;not null" json:"content"`
	AuthorID string  `gorm:"size:36;not null;index" json:"authorId"`
	Author   *User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	NewsID   *string `gorm:"size:36;index" json:"newsId"`
	VideoID  *string `gorm:"size:36;index" json:"videoId"`
	ImageID  *string `gorm:"size:36;index" json:"imageId"`
	PostID   *string `gorm:"size:36;index" json:"postId"`
	ParentID *string `gorm:"size:36;index" json:"parentId"`

	News    *News          `gorm:"foreignKey:NewsID" json:"-"`
	Video   *Video         `gorm:"foreignKey:VideoID" json:"-"`
	Image   *Image         `gorm:"foreignKey:ImageID" json:"-"`
	Post    *CommunityPost `gorm:"foreignKey:PostID" json:"-"`
	Replies []*Comment     `gorm:"foreignKey:ParentID" json:"replies"`

	LikesCount   int64 `gorm:"->;-:migration" json:"likesCount"`
	RepliesCount int64 `gorm:"->;-:migration" json:"repliesCount"`
}

// Target returns the item the comment is attached to.
func (c *Comment) Target() (Target, bool) {
	switch {
	case c.NewsID != nil:
		return Target{Kind: TargetNews, ID: *c.NewsID}, true
	case c.VideoID != nil:
		return Target{Kind: TargetVideo, ID: *c.VideoID}, true
	case c.ImageID != nil:
		return Target{Kind: TargetImage, ID: *c.ImageID}, true
	case c.PostID != nil:
		return Target{Kind: TargetPost, ID: *c.PostID}, true
	}
	return Target{}, false
}
