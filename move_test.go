package twisty

import (
	"errors"
	"testing"
)

func TestMoveInverse(t *testing.T) {
	m := Turn(AxisY, -1, 1)
	inv := m.Inverse()
	if inv.Axis != AxisY || inv.Layer != -1 {
		t.Errorf("Inverse changed the layer: got %v", inv)
	}
	if inv.Direction() != -1 {
		t.Errorf("Inverse direction = %d, want -1", inv.Direction())
	}
	if inv.Inverse() != m {
		t.Errorf("Inverse of inverse = %v, want %v", inv.Inverse(), m)
	}
}

func TestMoveDirection(t *testing.T) {
	tests := []struct {
		m    Move
		want int
	}{
		{Turn(AxisX, 0, 1), 1},
		{Turn(AxisX, 0, -1), -1},
		{Move{Axis: AxisX}, 0},
	}
	for _, tt := range tests {
		if got := tt.m.Direction(); got != tt.want {
			t.Errorf("%v.Direction() = %d, want %d", tt.m, got, tt.want)
		}
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Turn(AxisZ, 1, -1), "z+1 -90°"},
		{Turn(AxisX, -1, 1), "x-1 +90°"},
		{Move{Axis: AxisY, Angle: 2 * QuarterTurn}, "y+0 +180°"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"x": AxisX, "Y": AxisY, " z ": AxisZ} {
		got, err := ParseAxis(in)
		if err != nil {
			t.Fatalf("ParseAxis(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseAxis(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseAxis("w"); !errors.Is(err, ErrInvalidAxis) {
		t.Errorf("ParseAxis(\"w\") error = %v, want ErrInvalidAxis", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Orange")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c != Orange {
		t.Errorf("ParseColor(\"Orange\") = %v, want Orange", c)
	}

	for _, in := range []string{"none", "purple"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestFaceHelpers(t *testing.T) {
	for _, a := range Axes {
		pos, neg := FaceFor(a, true), FaceFor(a, false)
		if pos.Axis() != a || neg.Axis() != a {
			t.Errorf("FaceFor(%v) axes = %v, %v", a, pos.Axis(), neg.Axis())
		}
		if pos.Sign() != 1 || neg.Sign() != -1 {
			t.Errorf("FaceFor(%v) signs = %v, %v", a, pos.Sign(), neg.Sign())
		}
		if pos.Normal() != a.Unit() {
			t.Errorf("FaceFor(%v, true).Normal() = %v, want %v", a, pos.Normal(), a.Unit())
		}
	}
	if got := FaceNegZ.String(); got != "-z" {
		t.Errorf("FaceNegZ.String() = %q, want \"-z\"", got)
	}
}
