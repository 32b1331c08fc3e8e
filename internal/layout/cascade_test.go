package layout

import (
	"testing"

	"github.com/yourusername/desk-cli/internal/types"
)

func TestCascadePlace(t *testing.T) {
	c := DefaultCascade()

	want := []types.Point{
		{X: 100, Y: 100},
		{X: 130, Y: 130},
		{X: 160, Y: 160},
		{X: 190, Y: 190},
		{X: 220, Y: 220},
		{X: 100, Y: 100},
		{X: 130, Y: 130},
	}

	for n, w := range want {
		if got := c.Place(n); got != w {
			t.Errorf("Place(%d) = %v, want %v", n, got, w)
		}
	}
}

func TestCascadePlace_Custom(t *testing.T) {
	c := Cascade{Origin: types.Point{X: 10, Y: 40}, Step: 20, Slots: 2}

	tests := []struct {
		n    int
		want types.Point
	}{
		{0, types.Point{X: 10, Y: 40}},
		{1, types.Point{X: 30, Y: 60}},
		{2, types.Point{X: 10, Y: 40}},
	}

	for _, tt := range tests {
		if got := c.Place(tt.n); got != tt.want {
			t.Errorf("Place(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestCascadePlace_ZeroSlots(t *testing.T) {
	c := Cascade{Origin: types.Point{X: 5, Y: 5}, Step: 30}

	if got := c.Place(3); got != (types.Point{X: 5, Y: 5}) {
		t.Errorf("Place(3) = %v, want (5, 5)", got)
	}
}

func TestMaximized(t *testing.T) {
	got := Maximized(types.Size{Width: 1440, Height: 900})
	want := types.Rect{X: 0, Y: 28, Width: 1440, Height: 872}
	if got != want {
		t.Errorf("Maximized = %+v, want %+v", got, want)
	}
}
