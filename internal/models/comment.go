package models

import "time"

type Comment struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type CommentView struct {
	ID         int64         `json:"id"`
	Text       string        `json:"text"`
	AuthorName string        `json:"authorName"`
	Created    LocalDateTime `json:"created"`
}

func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    LocalDateTime(c.Created),
	}
}
