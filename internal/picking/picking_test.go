package picking

import (
	"math"
	"testing"

	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slab returns two parallel quads at z=0 and z=-1, both facing +Z
func slab() *stl.Model {
	m := stl.NewModel("slab")
	for _, z := range []float64{0, -1} {
		n := geometry.NewVector3(0, 0, 1)
		a := geometry.NewVector3(-1, -1, z)
		b := geometry.NewVector3(1, -1, z)
		c := geometry.NewVector3(1, 1, z)
		d := geometry.NewVector3(-1, 1, z)
		m.AddTriangle(geometry.NewTriangle(n, a, b, c))
		m.AddTriangle(geometry.NewTriangle(n, a, c, d))
	}
	return m
}

func near(t *testing.T, want, got geometry.Vector3) {
	t.Helper()
	assert.InDelta(t, 0, want.Distance(got), 1e-9, "expected %v, got %v", want, got)
}

func TestPickNearestTriangle(t *testing.T) {
	p := New(slab(), geometry.IdentityOrientation())

	hit := p.Pick(geometry.NewVector3(0.2, 0.3, 5), geometry.NewVector3(0, 0, -1))
	require.True(t, hit.HasPoint)
	require.True(t, hit.HasFace)
	near(t, geometry.NewVector3(0.2, 0.3, 0), hit.Point)
	near(t, geometry.NewVector3(0, 0, 1), hit.FaceNormal)
}

func TestPickMiss(t *testing.T) {
	p := New(slab(), geometry.IdentityOrientation())

	assert.Equal(t, surface.Hit{}, p.Pick(geometry.NewVector3(5, 5, 5), geometry.NewVector3(0, 0, -1)))
	assert.Equal(t, surface.Hit{}, p.Pick(geometry.NewVector3(0, 0, 5), geometry.NewVector3(0, 0, 1)))
}

func TestPickRotatedModel(t *testing.T) {
	// Turned so the slab faces +X
	orientation := geometry.AxisAngle(geometry.NewVector3(0, 1, 0), math.Pi/2)
	p := New(slab(), orientation)
	p.SetPosition(geometry.NewVector3(10, 0, 0))

	hit := p.Pick(geometry.NewVector3(20, 0.5, 0), geometry.NewVector3(-1, 0, 0))
	require.True(t, hit.HasPoint)
	near(t, geometry.NewVector3(10, 0.5, 0), hit.Point)

	// The normal stays in model space; projecting applies the orientation
	near(t, geometry.NewVector3(0, 0, 1), hit.FaceNormal)
	surfacePoint, ok := surface.Projector{Offset: 0.015}.Project(hit)
	require.True(t, ok)
	near(t, geometry.NewVector3(10.015, 0.5, 0), surfacePoint)
}
