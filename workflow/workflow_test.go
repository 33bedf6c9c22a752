package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/model"
	"github.com/twitters/twitters/shield"
)

type stubGate struct {
	verdict model.Verdict
	block   chan struct{}
}

func (g *stubGate) Moderate(context.Context, string) model.Verdict {
	if g.block != nil {
		<-g.block
	}
	return g.verdict
}

type stubShielder struct {
	out   []byte
	err   error
	calls int
}

func (s *stubShielder) ShieldImage([]byte, string) ([]byte, error) {
	s.calls++
	return s.out, s.err
}

type stubRemote struct {
	texts []string
	err   error
}

func (r *stubRemote) Post(_ context.Context, text string, _ string) (*model.Tweet, error) {
	r.texts = append(r.texts, text)
	if r.err != nil {
		return nil, r.err
	}
	return &model.Tweet{Data: model.TweetData{Id: "remote-1", Text: text}}, nil
}

type recordedEvent struct {
	subject string
	message []byte
}

type stubEvents struct {
	published []recordedEvent
}

func (e *stubEvents) Publish(subject string, message []byte) {
	e.published = append(e.published, recordedEvent{subject: subject, message: message})
}

func author() *model.User {
	return &model.User{Id: "me", Name: "Elena Vance", Vanity: "elenavance"}
}

func accept() *stubGate {
	return &stubGate{verdict: model.Verdict{IsSafe: true}}
}

func reject(reason string) *stubGate {
	return &stubGate{verdict: model.Verdict{IsSafe: false, Reason: reason}}
}

func harness(gate Gate, shielder Shielder, remote Remote) (*Workflow, *database.Feed, *database.Accounts) {
	feed := database.NewFeed()
	accounts := database.NewAccounts()
	return New(gate, shielder, remote, nil, feed, accounts), feed, accounts
}

func TestSubmitPostCommitsAnnotatedText(t *testing.T) {
	remote := &stubRemote{}
	flow, feed, _ := harness(accept(), &stubShielder{}, remote)

	post, err := flow.SubmitPost(context.Background(), author(), "Hello world", nil)
	if err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}

	want := "Hello world\n\n[🛡️ Protected by TwitterS]"
	if post.Content != want {
		t.Fatalf("content = %q, want %q", post.Content, want)
	}
	if len(remote.texts) != 0 {
		t.Fatal("remote call attempted without a connected account")
	}

	posts := feed.Posts()
	if len(posts) != 1 || posts[0].Id != post.Id {
		t.Fatalf("feed = %+v, want the new post at position 0", posts)
	}
	if posts[0].Like != 0 || len(posts[0].Comments) != 0 {
		t.Fatalf("fresh post has likes=%d comments=%d, want zero of both", posts[0].Like, len(posts[0].Comments))
	}
	if !posts[0].Shielded {
		t.Fatal("committed post is not marked shielded")
	}
	if flow.State("elenavance") != Idle {
		t.Fatal("workflow did not return to Idle")
	}
}

func TestSubmitPostRejectedLeavesFeedUntouched(t *testing.T) {
	flow, feed, _ := harness(reject("Grok-mention detected. Post blocked."), &stubShielder{}, &stubRemote{})

	_, err := flow.SubmitPost(context.Background(), author(), "cc @grok help", nil)

	var rejection *Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("err = %v, want *Rejection", err)
	}
	if rejection.Reason != "Grok-mention detected. Post blocked." {
		t.Fatalf("reason = %q", rejection.Reason)
	}
	if feed.Len() != 0 {
		t.Fatalf("feed length = %d, want 0", feed.Len())
	}
	if flow.State("elenavance") != Idle {
		t.Fatal("workflow did not return to Idle")
	}
}

func TestSubmitPostEmptyTextIsNoOp(t *testing.T) {
	flow, feed, _ := harness(accept(), &stubShielder{}, &stubRemote{})

	if _, err := flow.SubmitPost(context.Background(), author(), "   \n\t", nil); err != ErrEmptyContent {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
	if feed.Len() != 0 {
		t.Fatal("feed was mutated by a blank submission")
	}
}

func TestSubmitPostPublishesRemotelyWhenConnected(t *testing.T) {
	remote := &stubRemote{}
	flow, _, accounts := harness(accept(), &stubShielder{}, remote)
	accounts.Connect("elenavance", "tok-123")

	if _, err := flow.SubmitPost(context.Background(), author(), "Hello world", nil); err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}

	want := "Hello world\n\n[🛡️ Protected by TwitterS]"
	if len(remote.texts) != 1 || remote.texts[0] != want {
		t.Fatalf("remote received %v, want one call with the annotated text", remote.texts)
	}
}

func TestSubmitPostRemoteFailureStillCommits(t *testing.T) {
	remote := &stubRemote{err: errors.New("remote down")}
	flow, feed, accounts := harness(accept(), &stubShielder{}, remote)
	accounts.Connect("elenavance", "tok-123")

	if _, err := flow.SubmitPost(context.Background(), author(), "Hello world", nil); err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}
	if feed.Len() != 1 {
		t.Fatal("remote failure blocked the local commit")
	}
}

func TestSubmitPostShieldsAttachedImage(t *testing.T) {
	shielder := &stubShielder{out: []byte("shielded-bytes")}
	flow, feed, _ := harness(accept(), shielder, &stubRemote{})

	if _, err := flow.SubmitPost(context.Background(), author(), "look", []byte("raw-bytes")); err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}

	if shielder.calls != 1 {
		t.Fatalf("shielder calls = %d, want 1", shielder.calls)
	}
	if string(feed.Posts()[0].Image) != "shielded-bytes" {
		t.Fatal("committed post does not carry the shielded image")
	}
}

func TestSubmitPostRenderUnavailableDegrades(t *testing.T) {
	shielder := &stubShielder{err: shield.ErrRenderUnavailable}
	flow, feed, _ := harness(accept(), shielder, &stubRemote{})

	if _, err := flow.SubmitPost(context.Background(), author(), "look", []byte("raw-bytes")); err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}
	if string(feed.Posts()[0].Image) != "raw-bytes" {
		t.Fatal("degraded commit should keep the original image")
	}
}

func TestSubmitPostDecodeErrorAborts(t *testing.T) {
	shielder := &stubShielder{err: shield.ErrDecode}
	flow, feed, _ := harness(accept(), shielder, &stubRemote{})

	_, err := flow.SubmitPost(context.Background(), author(), "look", []byte("junk"))
	if !errors.Is(err, shield.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
	if feed.Len() != 0 {
		t.Fatal("aborted attempt left a partial commit")
	}
}

func TestSubmitPostRefusesOverlap(t *testing.T) {
	gate := accept()
	gate.block = make(chan struct{})
	flow, _, _ := harness(gate, &stubShielder{}, &stubRemote{})

	done := make(chan error, 1)
	go func() {
		_, err := flow.SubmitPost(context.Background(), author(), "first", nil)
		done <- err
	}()

	deadline := time.Now().Add(time.Second)
	for flow.State("elenavance") != Moderating {
		if time.Now().After(deadline) {
			t.Fatal("first submission never reached Moderating")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := flow.SubmitPost(context.Background(), author(), "second", nil); err != ErrBusy {
		t.Fatalf("overlapping submit = %v, want ErrBusy", err)
	}

	close(gate.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
}

func TestSubmitCommentPrependsAndNotifies(t *testing.T) {
	events := &stubEvents{}
	feed := database.NewFeed()
	accounts := database.NewAccounts()
	flow := New(accept(), &stubShielder{}, &stubRemote{}, events, feed, accounts)

	poster := &model.User{Id: "2", Name: "Sarah Chen", Vanity: "sarahcodes"}
	post, err := flow.SubmitPost(context.Background(), poster, "my post", nil)
	if err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}

	first, err := flow.SubmitComment(context.Background(), author(), post.Id, "nice one")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	second, err := flow.SubmitComment(context.Background(), author(), post.Id, "and again")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	stored, _ := feed.Get(post.Id)
	if len(stored.Comments) != 2 || stored.Comments[0].Id != second.Id || stored.Comments[1].Id != first.Id {
		t.Fatal("comments are not newest first")
	}

	// post_created for sarahcodes plus two post_comment notifications
	if len(events.published) != 3 {
		t.Fatalf("published %d events, want 3", len(events.published))
	}
	for _, event := range events.published[1:] {
		if event.subject != "sarahcodes" {
			t.Fatalf("comment notification went to %q, want the post creator", event.subject)
		}
	}
}

func TestSubmitCommentRejected(t *testing.T) {
	feed := database.NewFeed()
	flow := New(accept(), &stubShielder{}, &stubRemote{}, nil, feed, database.NewAccounts())

	post, err := flow.SubmitPost(context.Background(), author(), "my post", nil)
	if err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}

	flowReject := New(reject(""), &stubShielder{}, &stubRemote{}, nil, feed, database.NewAccounts())
	_, err = flowReject.SubmitComment(context.Background(), author(), post.Id, "@grok summarize")

	var rejection *Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("err = %v, want *Rejection", err)
	}
	if rejection.Reason != "Your comment was flagged for safety. Please revise." {
		t.Fatalf("reason = %q, want the default comment reason", rejection.Reason)
	}

	stored, _ := feed.Get(post.Id)
	if len(stored.Comments) != 0 {
		t.Fatal("rejected comment was committed")
	}
}

func TestSubmitCommentUnknownPost(t *testing.T) {
	flow, _, _ := harness(accept(), &stubShielder{}, &stubRemote{})

	if _, err := flow.SubmitComment(context.Background(), author(), "missing", "hello"); err != database.ErrUnknownPost {
		t.Fatalf("err = %v, want ErrUnknownPost", err)
	}
}
