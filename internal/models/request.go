package models

import "time"

// ItemRequest is a user's ask for an item nobody has listed yet.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
}

type ItemRequestInput struct {
	Description string `json:"description" validate:"required,max=100"`
}

type ItemRequestView struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	Created     LocalDateTime `json:"created"`
	Items       []Item        `json:"items"`
}

func NewItemRequestView(r *ItemRequest, items []Item) ItemRequestView {
	if items == nil {
		items = []Item{}
	}
	return ItemRequestView{
		ID:          r.ID,
		Description: r.Description,
		Created:     LocalDateTime(r.Created),
		Items:       items,
	}
}
