package models

import "time"

type Post struct {
	ID       int       `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	AuthorID int       `gorm:"not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *int      `gorm:"index"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image    string    `gorm:"size:255"`
	PubDate  time.Time `gorm:"autoCreateTime;index"`
}

// PostResponse is the wire shape of a post. Author is the username.
type PostResponse struct {
	ID      int       `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Image   *string   `json:"image"`
	Group   *int      `json:"group"`
	PubDate time.Time `json:"pub_date"`
}

func (p *Post) Response() PostResponse {
	resp := PostResponse{
		ID:      p.ID,
		Text:    p.Text,
		Author:  p.Author.Username,
		Group:   p.GroupID,
		PubDate: p.PubDate,
	}
	if p.Image != "" {
		image := p.Image
		resp.Image = &image
	}
	return resp
}
