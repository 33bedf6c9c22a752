package model

// Comment struct defines a reply under a post. Immutable after
// creation; the newest comment always sits first in the list.
type Comment struct {
	Id        string `json:"id"`
	Author    *User  `json:"author"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// AddBody defines the body when writing a comment
type AddBody struct {
	Content string `json:"content"`
}
