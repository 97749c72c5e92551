package models

// Like associates a user with exactly one target. TargetKey mirrors the
// populated foreign key so the unique index covers every target kind.
type Like struct {
	Base
	UserID    string  `gorm:"size:36;not null;uniqueIndex:idx_likes_user_target" json:"userId"`
	TargetKey string  `gorm:"size:80;not null;uniqueIndex:idx_likes_user_target" json:"-"`
	NewsID    *string `gorm:"size:36;index" json:"newsId"`
	VideoID   *string `gorm:"size:36;index" json:"videoId"`
	ImageID   *string `gorm:"size:36;index" json:"imageId"`
	PostID    *string `gorm:"size:36;index" json:"postId"`
	CommentID *string `gorm:"size:36;index" json:"commentId"`

	User    *User          `gorm:"foreignKey:UserID" json:"-"`
	News    *News          `gorm:"foreignKey:NewsID" json:"-"`
	Video   *Video         `gorm:"foreignKey:VideoID" json:"-"`
	Image   *Image         `gorm:"foreignKey:ImageID" json:"-"`
	Post    *CommunityPost `gorm:"foreignKey:PostID" json:"-"`
	Comment *Comment       `gorm:"foreignKey:CommentID" json:"-"`
}
