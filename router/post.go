package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/model"
	"github.com/twitters/twitters/shield"
	"github.com/twitters/twitters/workflow"
)

const NEW = "new"

// PostHandler re-routes to the requested handler
func PostHandler(flow *workflow.Workflow, feed *database.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := strings.TrimPrefix(req.URL.Path, "/posts/")

		switch {
		case req.Method == http.MethodPost && id == NEW:
			newPost(w, req, flow)
		case req.Method == http.MethodGet && id == "":
			listPosts(w, feed)
		case req.Method == http.MethodGet:
			getPost(w, id, feed)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			json.NewEncoder(w).Encode(model.RequestError{
				Error:   true,
				Message: ErrorMethodNotAllowed,
			})
		}
	}
}

// newPost allows to submit a new post through the safety pipeline
func newPost(w http.ResponseWriter, req *http.Request, flow *workflow.Workflow) {
	w.Header().Set("Content-Type", "application/json")
	jsonEncoder := json.NewEncoder(w)

	vanity := getVanity(req.Header.Get("authorization"))
	if vanity == "" {
		w.WriteHeader(http.StatusUnauthorized)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidToken,
		})
		return
	}

	defer req.Body.Close()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorUnableReadBody,
		})
		return
	}

	var getbody model.PostBody
	if err = json.Unmarshal(body, &getbody); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidBody,
		})
		return
	}

	post, err := flow.SubmitPost(req.Context(), authorFor(vanity), getbody.Content, getbody.Image)
	if err != nil {
		writeSubmitError(w, jsonEncoder, err)
		return
	}

	jsonEncoder.Encode(model.RequestError{
		Error:   false,
		Message: post.Id,
	})
}

// listPosts returns the whole feed, newest post first
func listPosts(w http.ResponseWriter, feed *database.Feed) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(feed.Posts())
}

// getPost returns a single post with its comments
func getPost(w http.ResponseWriter, id string, feed *database.Feed) {
	w.Header().Set("Content-Type", "application/json")
	jsonEncoder := json.NewEncoder(w)

	post, err := feed.Get(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidPost,
		})
		return
	}

	jsonEncoder.Encode(post)
}

// writeSubmitError converts a workflow error into its response
func writeSubmitError(w http.ResponseWriter, jsonEncoder *json.Encoder, err error) {
	var rejection *workflow.Rejection

	switch {
	case errors.Is(err, workflow.ErrEmptyContent):
		w.WriteHeader(http.StatusBadRequest)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidBody,
		})
	case errors.Is(err, workflow.ErrBusy):
		w.WriteHeader(http.StatusConflict)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorSubmissionInFlight,
		})
	case errors.As(err, &rejection):
		w.WriteHeader(http.StatusBadRequest)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: rejection.Reason,
		})
	case errors.Is(err, shield.ErrDecode):
		w.WriteHeader(http.StatusBadRequest)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidImage,
		})
	case errors.Is(err, database.ErrUnknownPost):
		w.WriteHeader(http.StatusNotFound)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidPost,
		})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorSyncFailure,
		})
	}
}
