package router

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"github.com/twitters/twitters/helpers"
	"github.com/twitters/twitters/model"
)

var vanityCheck = regexp.MustCompile(`^[a-z0-9_]{2,24}$`)

// SessionHandler grants a session token for a vanity. There is no
// password: identities are client-attributed, like the rest of the
// feed state.
func SessionHandler() http.HandlerFunc {
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

		var getbody model.SessionBody
		if err = json.Unmarshal(body, &getbody); err != nil || !vanityCheck.MatchString(getbody.Vanity) {
			w.WriteHeader(http.StatusBadRequest)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidBody,
			})
			return
		}

		token, err := helpers.CreateToken(getbody.Vanity)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorSyncFailure,
			})
			return
		}

		jsonEncoder.Encode(model.RequestError{
			Error:   false,
			Message: token,
		})
	}
}
