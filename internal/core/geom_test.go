package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 12, 12, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right inside", 14, 14, true},
		{"right edge outside", 15, 12, false},
		{"bottom edge outside", 12, 15, false},
		{"left outside", 9, 12, false},
		{"above", 12, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestRectEdgesAndInset(t *testing.T) {
	r := NewRect(2, 3, 10, 6)
	if r.Right() != 12 || r.Bottom() != 9 {
		t.Errorf("edges = %d, %d", r.Right(), r.Bottom())
	}
	if got := r.Inset(1); got != NewRect(3, 4, 8, 4) {
		t.Errorf("Inset(1) = %+v", got)
	}
	if got := r.Inset(4); got.H != 0 || got.W != 2 {
		t.Errorf("Inset(4) = %+v, height should floor at 0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}
	f.Set(ActionShoot)
	f.Drag = &Drag{FromX: 1, ToX: 5}
	if !f.Has(ActionShoot) || f.Has(ActionQuit) || f.Empty() {
		t.Errorf("frame = %+v", f)
	}
	f.Clear()
	if !f.Empty() || f.Has(ActionShoot) {
		t.Error("Clear should drop actions and drag")
	}

	var zero InputFrame
	if zero.Has(ActionShoot) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionBack)
	if !zero.Has(ActionBack) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionAimLeft.String() != "AimLeft" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
	if ColorOrange.ANSI() != "208" || ColorDefault.ANSI() != "" || Color(200).ANSI() != "" {
		t.Error("unexpected ANSI codes")
	}
}
