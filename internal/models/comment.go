package models

import "time"

type Comment struct {
	ID       int       `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	AuthorID int       `gorm:"not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostID   int       `gorm:"not null;index"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Created  time.Time `gorm:"autoCreateTime;index"`
}

type CommentResponse struct {
	ID      int       `json:"id"`
	Author  string    `json:"author"`
	Post    int       `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

func (c *Comment) Response() CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Post:    c.PostID,
		Text:    c.Text,
		Created: c.Created,
	}
}
