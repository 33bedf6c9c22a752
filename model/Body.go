package model

// ConnectBody define the body struct of the remote account route
type ConnectBody struct {
	Token string `json:"token"`
}

// CaptionBody define the body struct of the caption suggestion route
type CaptionBody struct {
	Topic string `json:"topic"`
}

// SessionBody define the body struct of the session route
type SessionBody struct {
	Vanity string `json:"vanity"`
}

// EventBody define the body struct of the overlay event route.
// Key and modifiers are only read for "keydown" events.
type EventBody struct {
	Event string `json:"event"`
	Key   string `json:"key,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Shift bool   `json:"shift,omitempty"`
	Ctrl  bool   `json:"ctrl,omitempty"`
}
