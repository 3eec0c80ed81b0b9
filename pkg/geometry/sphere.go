package geometry

import "math"

// Sphere is a bounding sphere. The zero value has no extent.
type Sphere struct {
	Center Vector3
	Radius float64
}

// BoundingSphere centers the sphere on the centroid of points and sizes it to
// the farthest point. It is not minimal, but every point lies inside it.
func BoundingSphere(points []Vector3) Sphere {
	center := Centroid(points)
	var radius float64
	for _, p := range points {
		radius = math.Max(radius, center.Distance(p))
	}
	return Sphere{Center: center, Radius: radius}
}

// Contains reports whether p lies inside or on the sphere
func (s Sphere) Contains(p Vector3) bool {
	return s.Center.Distance(p) <= s.Radius
}

// Reaches reports whether a probe sphere of radius r around p can touch any
// point inside s. It is a necessary condition for any enclosed point being
// within r of p, with a small slack so rounding never rejects a true contact.
func (s Sphere) Reaches(p Vector3, r float64) bool {
	limit := s.Radius + r
	return s.Center.Distance(p) <= limit+limit*1e-9+1e-12
}
