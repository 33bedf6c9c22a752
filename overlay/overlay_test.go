package overlay

import (
	"testing"
	"time"
)

func TestBlurAndFocusToggle(t *testing.T) {
	shield := NewShield(DefaultHold)

	if got := shield.Notify(WindowBlur); got != Obstructed {
		t.Fatalf("after blur, state = %v, want Obstructed", got)
	}
	if got := shield.Notify(WindowFocus); got != Visible {
		t.Fatalf("after focus, state = %v, want Visible", got)
	}
}

func TestVisibilityToggle(t *testing.T) {
	shield := NewShield(DefaultHold)

	if got := shield.Notify(VisibilityHidden); got != Obstructed {
		t.Fatalf("after hidden, state = %v, want Obstructed", got)
	}
	if got := shield.Notify(VisibilityVisible); got != Visible {
		t.Fatalf("after visible, state = %v, want Visible", got)
	}
}

func TestCaptureChordAutoClears(t *testing.T) {
	shield := NewShield(20 * time.Millisecond)

	if got := shield.Notify(CaptureChord); got != Obstructed {
		t.Fatalf("after chord, state = %v, want Obstructed", got)
	}

	deadline := time.Now().Add(time.Second)
	for shield.State() != Visible {
		if time.Now().After(deadline) {
			t.Fatal("capture hold never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCaptureHoldDoesNotClearWhileAway(t *testing.T) {
	shield := NewShield(20 * time.Millisecond)

	shield.Notify(WindowBlur)
	shield.Notify(CaptureChord)
	time.Sleep(100 * time.Millisecond)

	if got := shield.State(); got != Obstructed {
		t.Fatalf("state = %v, want Obstructed while the window is away", got)
	}
	if got := shield.Notify(WindowFocus); got != Visible {
		t.Fatalf("after focus, state = %v, want Visible", got)
	}
}

func TestFocusDuringCaptureHoldStaysObstructed(t *testing.T) {
	shield := NewShield(time.Minute)

	shield.Notify(CaptureChord)
	if got := shield.Notify(WindowFocus); got != Obstructed {
		t.Fatalf("state = %v, want Obstructed during an active hold", got)
	}
}

func TestContextMenuIsSwallowed(t *testing.T) {
	shield := NewShield(DefaultHold)

	if got := shield.Notify(ContextMenu); got != Visible {
		t.Fatalf("after context menu, state = %v, want Visible", got)
	}
}

func TestIsCaptureChord(t *testing.T) {
	chords := []KeyPress{
		{Key: "PrintScreen"},
		{Key: "3", Meta: true, Shift: true},
		{Key: "4", Meta: true, Shift: true},
		{Key: "5", Meta: true, Shift: true},
		{Key: "p", Ctrl: true},
	}
	for _, press := range chords {
		if !IsCaptureChord(press) {
			t.Fatalf("IsCaptureChord(%+v) = false, want true", press)
		}
	}

	harmless := []KeyPress{
		{Key: "a"},
		{Key: "3", Meta: true},
		{Key: "p"},
		{Key: "s", Ctrl: true},
	}
	for _, press := range harmless {
		if IsCaptureChord(press) {
			t.Fatalf("IsCaptureChord(%+v) = true, want false", press)
		}
	}
}
