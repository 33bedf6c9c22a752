package router

import (
	"fmt"
	"net/http"

	"github.com/twitters/twitters/helpers"
	"github.com/twitters/twitters/model"
)

// Every possible error list
const (
	ErrorInvalidToken       = "Invalid token"
	ErrorInvalidBody        = "Invalid body"
	ErrorInvalidPost        = "Invalid post"
	ErrorInvalidImage       = "Image could not be read"
	ErrorInvalidEvent       = "Invalid event"
	ErrorMethodNotAllowed   = "Method not allowed"
	ErrorUnableReadBody     = "Unable to read body"
	ErrorSubmissionInFlight = "A submission is already in progress"
	ErrorSyncFailure        = "Encryption error or sync failure. Please try again."
)

// Every OK message reponse
const (
	Ok             = "OK"
	OkConnected    = "Remote account linked"
	OkDisconnected = "Remote account unlinked"
)

func Index(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "OK")
}

// getVanity permit to get vanity
func getVanity(token string) string {
	if token == "" {
		return ""
	}

	data, err := helpers.CheckToken(token)
	if err != nil {
		return ""
	}

	return data
}

// authorFor builds the author identity attributed to a session.
func authorFor(vanity string) *model.User {
	return &model.User{
		Id:     vanity,
		Name:   vanity,
		Vanity: vanity,
		Avatar: fmt.Sprintf("https://avatars.dicebear.com/api/bottts/%v.svg?size=%v", vanity, 150),
	}
}
