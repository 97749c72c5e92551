package models

// News is an AI news article.
type News struct {
	Base
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Content     string   `gorm:"type:text" json:"content"`
	Category    string   `gorm:"size:64;not null;index" json:"category"`
	ImageURL    string   `json:"imageUrl"`
	SourceURL   string   `json:"sourceUrl"`
	Tags        []string `gorm:"serializer:json" json:"tags"`
	Views       int      `gorm:"default:0" json:"views"`
	AuthorID    string   `gorm:"size:36;not null;index" json:"authorId"`
	Author      *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Counts
}

// Video is an AI video entry.
type Video struct {
	Base
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	VideoURL     string   `gorm:"not null" json:"videoUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Duration     int      `json:"duration"`
	Category     string   `gorm:"size:64;not null;index" json:"category"`
	Tags         []string `gorm:"serializer:json" json:"tags"`
	Views        int      `gorm:"default:0" json:"views"`
	AuthorID     string   `gorm:"size:36;not null;index" json:"authorId"`
	Author       *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Counts
}

// Image is an AI generated image.
type Image struct {
	Base
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	ImageURL     string   `gorm:"not null" json:"imageUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Category     string   `gorm:"size:64;not null;index" json:"category"`
	Tags         []string `gorm:"serializer:json" json:"tags"`
	Width        *int     `json:"width"`
	Height       *int     `json:"height"`
	FileSize     *int64   `json:"fileSize"`
	Views        int      `gorm:"default:0" json:"views"`
	AuthorID     string   `gorm:"size:36;not null;index" json:"authorId"`
	Author       *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Counts
}

// CommunityPost is a forum post. Pinned posts are listed first.
type CommunityPost struct {
	Base
	Title    string   `gorm:"size:255;not null" json:"title"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	Category string   `gorm:"size:64;not null;index" json:"category"`
	Tags     []string `gorm:"serializer:json" json:"tags"`
	Pinned   bool     `gorm:"default:false;index" json:"pinned"`
	Views    int      `gorm:"default:0" json:"views"`
	AuthorID string   `gorm:"size:36;not null;index" json:"authorId"`
	Author   *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Counts
}

// TableName pins the table name; "news" has no plural form.
func (News) TableName() string { return "news" }
