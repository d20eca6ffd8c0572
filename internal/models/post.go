package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"` // may be in the future
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category"`
	LocationID  *uint     `gorm:"index" json:"location_id"`
	Location    *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`
	Image       string    `gorm:"size:255" json:"image"` // path relative to the media root
	IsPublished bool      `gorm:"not null" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`

	// Not a column; filled in by listing queries.
	CommentCount int `gorm:"-" json:"comment_count"`
}
