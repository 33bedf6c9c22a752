package model

// Verdict is the moderation decision for one submission. It lives
// for the duration of the attempt and is never stored.
type Verdict struct {
	IsSafe        bool   `json:"isSafe"`
	Reason        string `json:"reason,omitempty"`
	SanitizedText string `json:"sanitizedText,omitempty"`
}
