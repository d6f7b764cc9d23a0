package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectCenterIn(t *testing.T) {
	got := NewRect(0, 0, 80, 24).CenterIn(40, 10)
	if got != NewRect(20, 7, 40, 10) {
		t.Errorf("CenterIn = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 || Abs(-5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned a wrong value")
	}
}

func TestActionString(t *testing.T) {
	if ActionRotate.String() != "Rotate" {
		t.Errorf("ActionRotate.String() = %q", ActionRotate.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionRotate) {
		t.Fatal("zero frame should be empty")
	}
	f.Set(ActionRotate)
	if !f.Has(ActionRotate) || f.Empty() {
		t.Error("Set did not register the action")
	}
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0m 0s"},
		{59.9, "0m 59s"},
		{60, "1m 0s"},
		{135, "2m 15s"},
		{3601, "60m 1s"},
		{-3, "0m 0s"},
	}

	for _, tc := range tests {
		if got := FormatDuration(tc.seconds); got != tc.expected {
			t.Errorf("FormatDuration(%v) = %q, expected %q", tc.seconds, got, tc.expected)
		}
	}
}
