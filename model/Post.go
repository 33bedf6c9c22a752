package model

import "time"

// Post struct defines how a committed post must be. Content and
// image are set once at creation; only the like counter and the
// comment list change afterwards.
type Post struct {
	Id        string     `json:"id"`
	Author    *User      `json:"author"`
	Content   string     `json:"content"`
	Image     []byte     `json:"image,omitempty"`
	Timestamp string     `json:"timestamp"`
	Like      int64      `json:"like"`
	Shielded  bool       `json:"shielded"`
	Comments  []*Comment `json:"comments"`
	CreatedAt time.Time  `json:"-"`
}

// PostBody defines how body when submitting a new post must be.
// The image travels base64-encoded.
type PostBody struct {
	Content string `json:"content"`
	Image   []byte `json:"image,omitempty"`
}
