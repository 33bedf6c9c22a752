package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/twitters/twitters/model"
	"github.com/twitters/twitters/overlay"
)

func notify(t *testing.T, handler http.HandlerFunc, event model.EventBody) model.RequestError {
	t.Helper()

	body, _ := json.Marshal(event)
	req := httptest.NewRequest(http.MethodPost, "/shield/event", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	return decodeResponse(t, rec)
}

func TestShieldHandlerEvents(t *testing.T) {
	handler := ShieldHandler(overlay.NewShield(overlay.DefaultHold))

	if out := notify(t, handler, model.EventBody{Event: "blur"}); out.Message != "obstructed" {
		t.Fatalf("after blur, state = %q", out.Message)
	}
	if out := notify(t, handler, model.EventBody{Event: "focus"}); out.Message != "visible" {
		t.Fatalf("after focus, state = %q", out.Message)
	}

	// a harmless key changes nothing
	if out := notify(t, handler, model.EventBody{Event: "keydown", Key: "a"}); out.Message != "visible" {
		t.Fatalf("after keydown a, state = %q", out.Message)
	}

	// a capture chord obstructs
	chord := model.EventBody{Event: "keydown", Key: "3", Meta: true, Shift: true}
	if out := notify(t, handler, chord); out.Message != "obstructed" {
		t.Fatalf("after capture chord, state = %q", out.Message)
	}
}

func TestShieldHandlerRejectsUnknownEvent(t *testing.T) {
	handler := ShieldHandler(overlay.NewShield(overlay.DefaultHold))

	body, _ := json.Marshal(model.EventBody{Event: "shake"})
	req := httptest.NewRequest(http.MethodPost, "/shield/event", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestShieldHandlerReportsState(t *testing.T) {
	handler := ShieldHandler(overlay.NewShield(overlay.DefaultHold))

	req := httptest.NewRequest(http.MethodGet, "/shield/event", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if out := decodeResponse(t, rec); out.Message != "visible" {
		t.Fatalf("initial state = %q, want visible", out.Message)
	}
}
