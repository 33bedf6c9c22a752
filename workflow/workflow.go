// Package workflow drives a submission from moderation to feed
// commit. One submission per author runs at a time; the feed is only
// touched at the final commit, so an aborted attempt leaves nothing
// behind.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/helpers"
	"github.com/twitters/twitters/model"
	"github.com/twitters/twitters/shield"
)

// State of one submission pipeline.
type State int

const (
	Idle State = iota
	Moderating
	Shielding
	Publishing
)

const (
	defaultPostReason    = "Safety check failed. Restricted keywords detected."
	defaultCommentReason = "Your comment was flagged for safety. Please revise."
)

var (
	// ErrEmptyContent: submitting blank text is a no-op.
	ErrEmptyContent = errors.New("empty content")

	// ErrBusy: a submission by the same author is still in flight.
	ErrBusy = errors.New("submission in progress")

	// ErrSyncFailure is the generic abort for shielding failures.
	ErrSyncFailure = errors.New("sync failure")
)

// Rejection is the terminal result of a refused submission.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

// Gate decides whether a submission may proceed.
type Gate interface {
	Moderate(ctx context.Context, text string) model.Verdict
}

// Shielder bakes protection into an image.
type Shielder interface {
	ShieldImage(src []byte, signature string) ([]byte, error)
}

// Remote is the external posting API.
type Remote interface {
	Post(ctx context.Context, text string, token string) (*model.Tweet, error)
}

// Events publishes best-effort notifications.
type Events interface {
	Publish(subject string, message []byte)
}

// Workflow owns the submission pipelines of every author.
type Workflow struct {
	mu     sync.Mutex
	states map[string]State

	gate     Gate
	shielder Shielder
	remote   Remote
	events   Events

	feed     *database.Feed
	accounts *database.Accounts
}

func New(gate Gate, shielder Shielder, remote Remote, events Events, feed *database.Feed, accounts *database.Accounts) *Workflow {
	return &Workflow{
		states:   make(map[string]State),
		gate:     gate,
		shielder: shielder,
		remote:   remote,
		events:   events,
		feed:     feed,
		accounts: accounts,
	}
}

// State reports the author's current pipeline state.
func (w *Workflow) State(vanity string) State {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.states[vanity]
}

// begin moves the author out of Idle, refusing overlapping
// submissions the way the UI disables its submit control.
func (w *Workflow) begin(vanity string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.states[vanity] != Idle {
		return ErrBusy
	}
	w.states[vanity] = Moderating

	return nil
}

func (w *Workflow) transition(vanity string, state State) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if state == Idle {
		delete(w.states, vanity)
	} else {
		w.states[vanity] = state
	}
}

// SubmitPost runs the full pipeline for a new post: moderation gate,
// shielding, optional best-effort remote publish, then the local
// commit. A refusal comes back as *Rejection and the feed is left
// untouched.
func (w *Workflow) SubmitPost(ctx context.Context, author *model.User, text string, image []byte) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	if err := w.begin(author.Vanity); err != nil {
		return nil, err
	}
	defer w.transition(author.Vanity, Idle)

	verdict := w.gate.Moderate(ctx, text)
	if !verdict.IsSafe {
		helpers.IncrementRejections()

		reason := verdict.Reason
		if reason == "" {
			reason = defaultPostReason
		}

		return nil, &Rejection{Reason: reason}
	}

	w.transition(author.Vanity, Shielding)

	content := shield.Annotate(text)

	finalImage := image
	if len(image) > 0 {
		shielded, err := w.shielder.ShieldImage(image, author.Vanity)
		switch {
		case err == nil:
			finalImage = shielded
			helpers.IncrementShields()
		case errors.Is(err, shield.ErrRenderUnavailable):
			// keep the original image rather than block the post
			log.Printf("Shielding degraded for %v: %v", author.Vanity, err)
		case errors.Is(err, shield.ErrDecode):
			return nil, err
		default:
			log.Printf("Shielding failed for %v: %v", author.Vanity, err)
			return nil, ErrSyncFailure
		}
	}

	w.transition(author.Vanity, Publishing)

	if token, ok := w.accounts.Token(author.Vanity); ok {
		if _, err := w.remote.Post(ctx, content, token); err != nil {
			helpers.IncrementRemoteFailures()
			log.Printf("Remote post failed for %v: %v", author.Vanity, err)
		}
	}

	post := &model.Post{
		Id:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Image:     finalImage,
		Timestamp: "Just now",
		Shielded:  true,
		Comments:  []*model.Comment{},
		CreatedAt: time.Now(),
	}
	w.feed.Prepend(post)
	helpers.IncrementPostsCreated()

	w.publish(author.Vanity, model.Message{Type: "post_created", From: author.Vanity, To: post.Id})

	return post, nil
}

// SubmitComment moderates and appends a comment under a post.
// Comments are not shielded and never leave the client.
func (w *Workflow) SubmitComment(ctx context.Context, author *model.User, postID string, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	post, err := w.feed.Get(postID)
	if err != nil {
		return nil, err
	}

	if err := w.begin(author.Vanity); err != nil {
		return nil, err
	}
	defer w.transition(author.Vanity, Idle)

	verdict := w.gate.Moderate(ctx, text)
	if !verdict.IsSafe {
		helpers.IncrementRejections()

		reason := verdict.Reason
		if reason == "" {
			reason = defaultCommentReason
		}

		return nil, &Rejection{Reason: reason}
	}

	comment := &model.Comment{
		Id:        uuid.NewString(),
		Author:    author,
		Text:      text,
		Timestamp: "Just now",
	}
	if err := w.feed.AddComment(postID, comment); err != nil {
		return nil, err
	}

	// Notify the post creator, unless they commented themselves
	if author.Vanity != post.Author.Vanity {
		w.publish(post.Author.Vanity, model.Message{Type: "post_comment", From: author.Vanity, To: postID, Important: true})
	}

	return comment, nil
}

func (w *Workflow) publish(subject string, message model.Message) {
	if w.events == nil {
		return
	}

	msg, err := json.Marshal(message)
	if err != nil {
		return
	}
	w.events.Publish(subject, msg)
}
