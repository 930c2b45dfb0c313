package models

import (
	"encoding/json"
	"time"
)

// Comment belongs to exactly one post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	PostID    uint      `gorm:"not null;index" json:"post"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentAuthor is the public view of a comment's author.
type CommentAuthor struct {
	ID   uint   `json:"_id"`
	Name string `json:"name"`
}

// MarshalJSON renders the author as {_id, name} under "user".
func (c Comment) MarshalJSON() ([]byte, error) {
	type comment Comment
	out := struct {
		comment
		User *CommentAuthor `json:"user,omitempty"`
	}{comment: comment(c)}
	if c.Author != nil {
		out.User = &CommentAuthor{ID: c.Author.ID, Name: c.Author.Name}
	}
	return json.Marshal(out)
}
