package database

import (
	"errors"
	"sync"

	"github.com/twitters/twitters/model"
)

// ErrUnknownPost is returned when a post id is not in the feed.
var ErrUnknownPost = errors.New("invalid post")

// Feed keeps every committed post in memory, newest first. Process
// memory is the only copy: there is no durability and no way to
// delete or edit anything once committed.
type Feed struct {
	mu    sync.Mutex
	posts []*model.Post
	liked map[string]map[string]bool
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{liked: make(map[string]map[string]bool)}
}

// Prepend puts a freshly committed post at the top of the feed.
func (f *Feed) Prepend(post *model.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.posts = append([]*model.Post{post}, f.posts...)
}

// Get returns a snapshot of the post with the given id.
func (f *Feed) Get(id string) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post := f.find(id)
	if post == nil {
		return nil, ErrUnknownPost
	}

	return clonePost(post), nil
}

// Posts returns a snapshot of the feed, newest post first.
func (f *Feed) Posts() []*model.Post {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*model.Post, len(f.posts))
	for i, post := range f.posts {
		out[i] = clonePost(post)
	}

	return out
}

// Len returns the number of posts in the feed.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.posts)
}

// AddComment prepends a comment to its parent post, newest first.
func (f *Feed) AddComment(id string, comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	post := f.find(id)
	if post == nil {
		return ErrUnknownPost
	}
	post.Comments = append([]*model.Comment{comment}, post.Comments...)

	return nil
}

// ToggleLike flips the user's like on a post and returns the new
// count. Liking twice in a row never double-increments: the second
// toggle takes the like back.
func (f *Feed) ToggleLike(id string, vanity string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post := f.find(id)
	if post == nil {
		return 0, ErrUnknownPost
	}

	if f.liked[id] == nil {
		f.liked[id] = make(map[string]bool)
	}

	if f.liked[id][vanity] {
		delete(f.liked[id], vanity)
		post.Like--
	} else {
		f.liked[id][vanity] = true
		post.Like++
	}

	return post.Like, nil
}

// clonePost copies the parts of a post the feed mutates after
// commit, so callers can read it without holding the lock. Authors
// and comments never change once created and stay shared.
func clonePost(post *model.Post) *model.Post {
	out := *post
	out.Comments = make([]*model.Comment, len(post.Comments))
	copy(out.Comments, post.Comments)

	return &out
}

// find must run with the lock held.
func (f *Feed) find(id string) *model.Post {
	for _, post := range f.posts {
		if post.Id == id {
			return post
		}
	}

	return nil
}
