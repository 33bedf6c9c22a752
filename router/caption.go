package router

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/model"
)

// Captioner suggests a polished caption for a topic. It degrades
// internally and can never block a submission.
type Captioner interface {
	Caption(ctx context.Context, topic string) string
}

// captionKey hashes the topic so it can be a cache key.
func captionKey(topic string) string {
	sum := sha256.Sum256([]byte(topic))

	return "caption:" + hex.EncodeToString(sum[:8])
}

// CaptionHandler returns an AI caption suggestion for a topic,
// cached for fifteen minutes.
func CaptionHandler(captioner Captioner) http.HandlerFunc {
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

		var getbody model.CaptionBody
		if err = json.Unmarshal(body, &getbody); err != nil || strings.TrimSpace(getbody.Topic) == "" {
			w.WriteHeader(http.StatusBadRequest)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidBody,
			})
			return
		}

		key := captionKey(getbody.Topic)
		if cached := database.CacheGet(key); cached != "" {
			jsonEncoder.Encode(model.RequestError{
				Error:   false,
				Message: cached,
			})
			return
		}

		suggestion := captioner.Caption(req.Context(), getbody.Topic)
		database.CacheSet(key, suggestion, 900)

		jsonEncoder.Encode(model.RequestError{
			Error:   false,
			Message: suggestion,
		})
	}
}
