package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/model"
)

// LikeHandler toggles the session user's like on a post and returns
// the new count. A second toggle takes the like back.
func LikeHandler(feed *database.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		jsonEncoder := json.NewEncoder(w)

		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorMethodNotAllowed,
			})
			return
		}

		vanity := getVanity(req.Header.Get("authorization"))
		if vanity == "" {
			w.WriteHeader(http.StatusUnauthorized)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidToken,
			})
			return
		}

		id := strings.TrimPrefix(req.URL.Path, "/like/")
		count, err := feed.ToggleLike(id, vanity)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidPost,
			})
			return
		}

		jsonEncoder.Encode(struct {
			Error bool  `json:"error"`
			Like  int64 `json:"like"`
		}{
			Error: false,
			Like:  count,
		})
	}
}
