package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestKeyNameArrows(t *testing.T) {
	tests := []struct {
		sym  sdl.Keycode
		want string
	}{
		{sdl.K_UP, "arrowup"},
		{sdl.K_DOWN, "arrowdown"},
		{sdl.K_LEFT, "arrowleft"},
		{sdl.K_RIGHT, "arrowright"},
		{sdl.K_ESCAPE, "escape"},
	}

	for _, tt := range tests {
		if got := KeyName(tt.sym); got != tt.want {
			t.Errorf("KeyName(%d) = %q, want %q", tt.sym, got, tt.want)
		}
	}
}

func TestIsKeyPressed(t *testing.T) {
	i := New()
	i.events = append(i.events,
		Event{Type: EventKeyUp, Key: "s"},
		Event{Type: EventKeyDown, Key: "w"},
	)

	if !i.IsKeyPressed("w") {
		t.Error("IsKeyPressed(w) = false, want true")
	}
	if i.IsKeyPressed("s") {
		t.Error("IsKeyPressed(s) = true for a key-up event")
	}
}
