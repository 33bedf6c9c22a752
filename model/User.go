package model

// User struct defines a member identity shown on posts and comments.
// Users are immutable once constructed and may be shared by many
// posts and comments.
type User struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Vanity   string `json:"vanity"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
}
