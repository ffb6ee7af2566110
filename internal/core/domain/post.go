package domain

import "time"

// Comment is reserved: no operation creates comments, but the field is part
// of the stored post shape and always encodes as an empty array.
type Comment struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Post is a forum entry. Author fields are a snapshot taken at creation time;
// AuthorID is a weak reference and may outlive the user it points at.
type Post struct {
	ID             string    `json:"id"             validate:"required"`
	Title          string    `json:"title"          validate:"required"`
	Content        string    `json:"content"        validate:"required"`
	AuthorID       string    `json:"authorId"       validate:"required"`
	AuthorUsername string    `json:"authorUsername"`
	AuthorAvatar   string    `json:"authorAvatar"`
	CreatedAt      time.Time `json:"createdAt"`
	Comments       []Comment `json:"comments"`
}

// Normalize replaces a nil comment list so the record always encodes "comments": [].
func (p *Post) Normalize() {
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}
