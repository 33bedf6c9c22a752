package router

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/model"
)

// ConnectHandler links or unlinks the session user's remote X
// account. Linked accounts get every new post mirrored remotely,
// best-effort.
func ConnectHandler(accounts *database.Accounts) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
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

		switch req.Method {
		case http.MethodPost:
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

			var getbody model.ConnectBody
			if err = json.Unmarshal(body, &getbody); err != nil || getbody.Token == "" {
				w.WriteHeader(http.StatusBadRequest)
				jsonEncoder.Encode(model.RequestError{
					Error:   true,
					Message: ErrorInvalidBody,
				})
				return
			}

			accounts.Connect(vanity, getbody.Token)
			jsonEncoder.Encode(model.RequestError{
				Error:   false,
				Message: OkConnected,
			})
		case http.MethodDelete:
			accounts.Disconnect(vanity)
			jsonEncoder.Encode(model.RequestError{
				Error:   false,
				Message: OkDisconnected,
			})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorMethodNotAllowed,
			})
		}
	}
}
