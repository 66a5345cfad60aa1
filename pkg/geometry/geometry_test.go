package geometry

import (
	"math"
	"testing"

	"github.com/menta2k/mfit/pkg/types"
)

func TestDistance(t *testing.T) {
	p1 := types.Point{X: 0, Y: 0}
	p2 := types.Point{X: 3, Y: 4}

	if d := Distance(p1, p2); d != 5 {
		t.Errorf("Expected distance 5, got %f", d)
	}
	if Distance(p1, p2) != Distance(p2, p1) {
		t.Error("Distance must be symmetric")
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	points := []types.Point{
		{X: 0, Y: 0},
		{X: -12.5, Y: 400.25},
		{X: 1e6, Y: -1e6},
	}
	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestDistanceNeverNegative(t *testing.T) {
	a := types.Point{X: 100, Y: 200}
	b := types.Point{X: -50, Y: 10}
	if d := Distance(a, b); d < 0 || math.IsNaN(d) {
		t.Errorf("Unexpected distance %f", d)
	}
}

func TestMidpoint(t *testing.T) {
	m := Midpoint(types.Point{X: 100, Y: 200}, types.Point{X: 300, Y: 250})
	if m.X != 200 || m.Y != 225 {
		t.Errorf("Expected (200, 225), got (%f, %f)", m.X, m.Y)
	}
}

func TestPathLength(t *testing.T) {
	shoulder := types.Point{X: 0, Y: 0}
	elbow := types.Point{X: 0, Y: 30}
	wrist := types.Point{X: 40, Y: 30}

	if l := PathLength(shoulder, elbow, wrist); l != 70 {
		t.Errorf("Expected path length 70, got %f", l)
	}
	if l := PathLength(shoulder); l != 0 {
		t.Errorf("Expected 0 for a single point, got %f", l)
	}
}
