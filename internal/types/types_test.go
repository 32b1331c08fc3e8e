package types

import "testing"

func TestClampSize(t *testing.T) {
	tests := []struct {
		name string
		in   Size
		want Size
	}{
		{"above floor", Size{Width: 600, Height: 400}, Size{Width: 600, Height: 400}},
		{"narrow", Size{Width: 120, Height: 400}, Size{Width: 300, Height: 400}},
		{"short", Size{Width: 600, Height: 50}, Size{Width: 600, Height: 200}},
		{"negative", Size{Width: -10, Height: -10}, Size{Width: 300, Height: 200}},
		{"exactly floor", Size{Width: 300, Height: 200}, Size{Width: 300, Height: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampSize(tt.in); got != tt.want {
				t.Errorf("ClampSize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWindowKind(t *testing.T) {
	tests := []struct {
		input string
		want  WindowKind
		ok    bool
	}{
		{"terminal", KindTerminal, true},
		{"browser", KindBrowser, true},
		{"fileExplorer", KindFileExplorer, true},
		{"FileExplorer", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseWindowKind(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseWindowKind(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRectContains(t *testing.T) {
	rect := NewRect(Point{X: 0, Y: 0}, Size{Width: 100, Height: 100})

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center point", Point{X: 50, Y: 50}, true},
		{"top-left corner", Point{X: 0, Y: 0}, true},
		{"bottom-right corner", Point{X: 100, Y: 100}, true},
		{"outside right", Point{X: 150, Y: 50}, false},
		{"outside top", Point{X: 50, Y: -10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestFileKindValid(t *testing.T) {
	for _, k := range []FileKind{FileFolder, FileText, FileImage} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if FileKind("video").Valid() {
		t.Error("video should not be valid")
	}
}
