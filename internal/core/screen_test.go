package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	if got := strings.Count(s.String(), " "); got != 80*24 {
		t.Errorf("new screen has %d spaces, expected %d", got, 80*24)
	}

	empty := NewScreen(-3, 5)
	if empty.Width() != 0 || empty.String() != "\n\n\n\n" {
		t.Errorf("negative width should give empty rows, got %dx%d %q", empty.Width(), empty.Height(), empty.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 4)
	s.Set(5, 2, 'X')

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"written", 5, 2, 'X'},
		{"blank", 4, 2, ' '},
		{"left of screen", -1, 0, ' '},
		{"right of screen", 10, 0, ' '},
		{"above screen", 0, -1, ' '},
		{"below screen", 0, 4, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Get(tt.x, tt.y); got != tt.want {
				t.Errorf("Get(%d, %d) = %q, expected %q", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Out-of-bounds writes must not wrap onto neighbouring rows.
	s.Set(10, 0, 'W')
	s.Set(-1, 1, 'W')
	if strings.ContainsRune(s.String(), 'W') {
		t.Errorf("out-of-bounds write leaked onto the screen:\n%s", s.String())
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColor(0, 0, "ab", ColorPink)
	s.Set(5, 1, 'x')

	if c := s.GetCell(1, 0); c.Rune != 'b' || c.Color != ColorPink {
		t.Errorf("GetCell(1, 0) = %+v, expected pink 'b'", c)
	}
	if c := s.GetCell(5, 1); c.Color != ColorDefault {
		t.Errorf("Set should use default color, got %d", c.Color)
	}

	s.Clear()
	if c := s.GetCell(1, 0); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("Clear should reset colors, got %+v", c)
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want string
	}{
		{"clipped at right edge", func(s *Screen) { s.DrawTextColor(6, 0, "Hello", ColorWhite) }, "      Hell"},
		{"clipped at left edge", func(s *Screen) { s.DrawTextColor(-2, 0, "Hello", ColorWhite) }, "llo       "},
		{"centered", func(s *Screen) { s.DrawTextCentered(0, "Hi", ColorWhite) }, "    Hi    "},
		{"centered by runes", func(s *Screen) { s.DrawTextCentered(0, "♥♥", ColorRed) }, "    ♥♥    "},
		{"wider than screen", func(s *Screen) { s.DrawTextCentered(0, "ROUND 1 CLEAR!", ColorGold) }, "UND 1 CLEA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			tt.draw(s)
			if got := s.Row(0); got != tt.want {
				t.Errorf("Row(0) = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(1, 1, 3, 2), '#')

	expected := "      \n ###  \n ###  \n      "
	if got := s.String(); got != expected {
		t.Errorf("DrawRect:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawBox(NewRect(1, 1, 5, 3), ColorGray)

	expected := "       \n ┌───┐ \n │   │ \n └───┘ \n       "
	if got := s.String(); got != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", got, expected)
	}
	if c := s.GetCell(5, 3); c.Color != ColorGray {
		t.Errorf("box color = %d, expected gray", c.Color)
	}

	small := NewScreen(3, 3)
	small.DrawBox(NewRect(0, 0, 1, 3), ColorGray)
	if strings.TrimSpace(strings.ReplaceAll(small.String(), "\n", "")) != "" {
		t.Errorf("box narrower than 2 should draw nothing, got %q", small.String())
	}
}

func TestScreenDrawSprite(t *testing.T) {
	s := NewScreen(10, 10)
	s.Fill('.')
	s.DrawSprite(2, 3, []string{
		" ^ ",
		"/#\\",
	}, ColorGreen)

	if s.Get(2, 3) != '.' {
		t.Errorf("sprite space should be transparent, got %q", s.Get(2, 3))
	}
	if s.Get(3, 3) != '^' {
		t.Errorf("expected '^' at (3, 3), got %q", s.Get(3, 3))
	}
	cell := s.GetCell(4, 4)
	if cell.Rune != '\\' || cell.Color != ColorGreen {
		t.Errorf("expected green '\\\\' at (4, 4), got %q color %d", cell.Rune, cell.Color)
	}

	// Partially off-screen sprites are clipped.
	s.DrawSprite(8, 9, []string{"abc", "def"}, ColorGreen)
	if s.Get(8, 9) != 'a' || s.Get(9, 9) != 'b' {
		t.Errorf("visible part of clipped sprite missing: %q", s.Row(9))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "Hello", ColorWhite)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "        " {
		t.Errorf("resize should blank the screen, row 0 = %q", got)
	}

	s.Resize(15, 8)
	s.Set(14, 7, 'Z')
	if s.Get(14, 7) != 'Z' || len(s.Row(7)) != 15 {
		t.Errorf("enlarged screen not addressable: %q", s.Row(7))
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawTextColor(0, 2, "Test", ColorWhite)

	if row := s.Row(2); row != "Test      " {
		t.Errorf("Row(2) = %q, expected %q", row, "Test      ")
	}
	if row := s.Row(-1); row != "          " {
		t.Errorf("out of bounds row should be spaces, got %q", row)
	}
}
