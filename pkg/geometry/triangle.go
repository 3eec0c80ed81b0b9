package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// CalculateNormal computes the geometric normal from the winding order
func (t Triangle) CalculateNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// FaceNormal returns the stored facet normal, falling back to the winding
// normal when the file did not provide one.
func (t Triangle) FaceNormal() Vector3 {
	if t.Normal.IsZero() {
		return t.CalculateNormal()
	}
	return t.Normal.Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Centroid([]Vector3{t.V1, t.V2, t.V3})
}

const intersectEpsilon = 1e-12

// IntersectRay returns the ray parameter of the hit (Möller–Trumbore).
// Both faces are hit; rays parallel to the plane miss.
func (t Triangle) IntersectRay(origin, dir Vector3) (float64, bool) {
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V1)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -intersectEpsilon && det < intersectEpsilon {
		return 0, false
	}
	inv := 1.0 / det
	s := origin.Sub(t.V1)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	dist := e2.Dot(q) * inv
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
