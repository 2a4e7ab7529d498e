package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.Cell(x, y); c != blank {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'o', ColorBrightWhite)
	if got := s.Cell(5, 5); got != (Cell{Ch: 'o', Fg: ColorBrightWhite}) {
		t.Errorf("Cell(5, 5) = %+v", got)
	}
	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' || s.Cell(5, 5).Fg != ColorDefault {
		t.Errorf("Set should overwrite rune and color, got %+v", s.Cell(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(4, 3)
	s.Fill('#')
	if s.Row(1) != "####" {
		t.Errorf("Row(1) after Fill = %q", s.Row(1))
	}
	s.Clear()
	if s.String() != "    \n    \n    " {
		t.Errorf("String() after Clear = %q", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"inside", 1, "ab", " ab  "},
		{"clipped right", 3, "abc", "   ab"},
		{"clipped left", -1, "abc", "bc   "},
		{"multibyte", 0, "→ok", "→ok  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 1)
			s.DrawText(tt.x, 0, tt.text)
			if got := s.Row(0); got != tt.want {
				t.Errorf("Row(0) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "abc")
	if got := s.Row(0); got != "   abc   " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawRect(NewRect(1, 1, 3, 2), '.', ColorGreen)
	if s.Row(1) != " ... " || s.Cell(2, 2).Fg != ColorGreen {
		t.Errorf("DrawRect: row %q cell %+v", s.Row(1), s.Cell(2, 2))
	}

	s.DrawBox(s.Bounds(), ColorGray)
	want := []string{
		"┌───┐",
		"│...│",
		"│...│",
		"└───┘",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("DrawBox:\n%s", got)
	}

	// Too small to draw anything.
	s2 := NewScreen(3, 3)
	s2.DrawBox(NewRect(0, 0, 1, 3), ColorGray)
	if s2.Get(0, 0) != ' ' {
		t.Error("a one-column box should draw nothing")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if got := s.String(); got != "ab\nef\n  " {
		t.Errorf("after shrink/grow: %q", got)
	}

	s.Resize(3, 1)
	if got := s.String(); got != "ab " {
		t.Errorf("after second resize: %q", got)
	}
}

func TestScreenRuns(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawTextColored(0, 0, "ww", ColorWhite)
	s.DrawTextColored(3, 0, "~~", ColorBlue)

	type run struct {
		text string
		fg   Color
	}
	var got []run
	s.Runs(0, func(text string, fg Color) { got = append(got, run{text, fg}) })

	want := []run{{"ww", ColorWhite}, {" ", ColorDefault}, {"~~", ColorBlue}, {" ", ColorDefault}}
	if len(got) != len(want) {
		t.Fatalf("runs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d = %v, want %v", i, got[i], want[i])
		}
	}
}
