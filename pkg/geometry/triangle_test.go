package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	lengths := tri.EdgeLengths()

	// Expected lengths: 3, 5, 4 (Pythagorean triple)
	if math.Abs(lengths[0]-3.0) > 1e-10 {
		t.Errorf("Edge 0 length failed: expected 3.0, got %v", lengths[0])
	}
	if math.Abs(lengths[1]-5.0) > 1e-10 {
		t.Errorf("Edge 1 length failed: expected 5.0, got %v", lengths[1])
	}
	if math.Abs(lengths[2]-4.0) > 1e-10 {
		t.Errorf("Edge 2 length failed: expected 4.0, got %v", lengths[2])
	}
}

func TestTrianglePerimeter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	perimeter := tri.Perimeter()
	expected := 12.0 // 3 + 4 + 5 = 12

	if math.Abs(perimeter-expected) > 1e-10 {
		t.Errorf("Perimeter failed: expected %v, got %v", expected, perimeter)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleIntersectRay(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(4, 0, 0),
		NewVector3(0, 4, 0),
	)

	dist, ok := tri.IntersectRay(NewVector3(1, 1, 5), NewVector3(0, 0, -1))
	if !ok {
		t.Fatalf("IntersectRay failed: expected a hit")
	}
	if math.Abs(dist-5.0) > 1e-10 {
		t.Errorf("IntersectRay distance: expected 5, got %v", dist)
	}

	// Back face is hit as well
	if _, ok := tri.IntersectRay(NewVector3(1, 1, -5), NewVector3(0, 0, 1)); !ok {
		t.Errorf("IntersectRay failed: expected a back-face hit")
	}

	// Outside the triangle
	if _, ok := tri.IntersectRay(NewVector3(3, 3, 5), NewVector3(0, 0, -1)); ok {
		t.Errorf("IntersectRay: expected a miss outside the triangle")
	}

	// Pointing away
	if _, ok := tri.IntersectRay(NewVector3(1, 1, 5), NewVector3(0, 0, 1)); ok {
		t.Errorf("IntersectRay: expected a miss behind the origin")
	}

	// Parallel to the plane
	if _, ok := tri.IntersectRay(NewVector3(1, 1, 5), NewVector3(1, 0, 0)); ok {
		t.Errorf("IntersectRay: expected a miss for a parallel ray")
	}
}

func TestTriangleFaceNormalFallback(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	expected := NewVector3(0, 0, 1)
	if got := tri.FaceNormal(); got != expected {
		t.Errorf("FaceNormal failed: expected %v, got %v", expected, got)
	}

	tri.Normal = NewVector3(0, 0, -2)
	if got := tri.FaceNormal(); got != NewVector3(0, 0, -1) {
		t.Errorf("FaceNormal should normalize the stored normal, got %v", got)
	}
}
