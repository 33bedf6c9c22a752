package router

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/model"
	"github.com/twitters/twitters/workflow"
)

// CommentHandler re-routes request to the right function
// based on its method
func CommentHandler(flow *workflow.Workflow, feed *database.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			getComments(w, req, feed)
		} else if req.Method == http.MethodPost {
			addComment(w, req, flow)
		} else {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			json.NewEncoder(w).Encode(model.RequestError{
				Error:   true,
				Message: ErrorMethodNotAllowed,
			})
		}
	}
}

// getComments returns a post's comments, newest first
func getComments(w http.ResponseWriter, req *http.Request, feed *database.Feed) {
	w.Header().Set("Content-Type", "application/json")
	jsonEncoder := json.NewEncoder(w)

	id := strings.TrimPrefix(req.URL.Path, "/comment/")
	post, err := feed.Get(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidPost,
		})
		return
	}

	if post.Comments == nil {
		jsonEncoder.Encode(make([]any, 0))
	} else {
		jsonEncoder.Encode(post.Comments)
	}
}

// addComment allows to create a new comment on a post
func addComment(w http.ResponseWriter, req *http.Request, flow *workflow.Workflow) {
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

	var getbody model.AddBody
	if err = json.Unmarshal(body, &getbody); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		jsonEncoder.Encode(model.RequestError{
			Error:   true,
			Message: ErrorInvalidBody,
		})
		return
	}

	id := strings.TrimPrefix(req.URL.Path, "/comment/")
	comment, err := flow.SubmitComment(req.Context(), authorFor(vanity), id, getbody.Content)
	if err != nil {
		writeSubmitError(w, jsonEncoder, err)
		return
	}

	jsonEncoder.Encode(model.RequestError{
		Error:   false,
		Message: comment.Id,
	})
}
