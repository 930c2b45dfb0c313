package models

import "time"

// Post belongs to exactly one group.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"_id"`
	GroupID       uint      `gorm:"not null;index" json:"group"`
	AuthorID      uint      `gorm:"not null;index" json:"authorId"`
	Author        *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title         string    `gorm:"size:300;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Comments      []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CommentsCount int       `gorm:"-" json:"commentsCount"`
	Score         int       `gorm:"-" json:"score"`
	UserVote      *int      `gorm:"-" json:"userVote"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
