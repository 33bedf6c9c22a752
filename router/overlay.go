package router

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/twitters/twitters/model"
	"github.com/twitters/twitters/overlay"
)

// ShieldHandler feeds client environment events into the capture
// deterrence overlay and reports the resulting state.
func ShieldHandler(guard *overlay.Shield) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		jsonEncoder := json.NewEncoder(w)

		if req.Method == http.MethodGet {
			jsonEncoder.Encode(model.RequestError{
				Error:   false,
				Message: guard.State().String(),
			})
			return
		}

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

		var getbody model.EventBody
		if err = json.Unmarshal(body, &getbody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidBody,
			})
			return
		}

		var state overlay.State
		switch getbody.Event {
		case "visibility_hidden":
			state = guard.Notify(overlay.VisibilityHidden)
		case "visibility_visible":
			state = guard.Notify(overlay.VisibilityVisible)
		case "blur":
			state = guard.Notify(overlay.WindowBlur)
		case "focus":
			state = guard.Notify(overlay.WindowFocus)
		case "contextmenu":
			state = guard.Notify(overlay.ContextMenu)
		case "keydown":
			press := overlay.KeyPress{
				Key:   getbody.Key,
				Meta:  getbody.Meta,
				Shift: getbody.Shift,
				Ctrl:  getbody.Ctrl,
			}
			if overlay.IsCaptureChord(press) {
				state = guard.Notify(overlay.CaptureChord)
			} else {
				state = guard.State()
			}
		default:
			w.WriteHeader(http.StatusBadRequest)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidEvent,
			})
			return
		}

		jsonEncoder.Encode(model.RequestError{
			Error:   false,
			Message: state.String(),
		})
	}
}
