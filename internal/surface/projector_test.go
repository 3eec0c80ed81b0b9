package surface

import (
	"math"
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func assertVectorNear(t *testing.T, want, got geometry.Vector3) {
	t.Helper()
	assert.InDelta(t, 0, want.Distance(got), 1e-9, "expected %v, got %v", want, got)
}

func TestProjectOffsetsAlongNormal(t *testing.T) {
	p := Projector{Offset: 0.015}
	hit := NewHit(geometry.NewVector3(1, 2, 3), geometry.NewVector3(0, 1, 0), geometry.IdentityOrientation())

	got, ok := p.Project(hit)
	assert.True(t, ok)
	assertVectorNear(t, geometry.NewVector3(1, 2.015, 3), got)
}

func TestProjectRotatesNormalIntoWorld(t *testing.T) {
	p := Projector{Offset: 0.015}
	// Object turned 90 degrees about Z: its local +X face now points along +Y
	orientation := geometry.AxisAngle(geometry.NewVector3(0, 0, 1), math.Pi/2)
	hit := NewHit(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), orientation)

	got, ok := p.Project(hit)
	assert.True(t, ok)
	assertVectorNear(t, geometry.NewVector3(0, 0.015, 0), got)
}

func TestProjectNormalizesNormal(t *testing.T) {
	p := Projector{Offset: 0.5}
	hit := NewHit(geometry.Vector3{}, geometry.NewVector3(0, 0, 10), geometry.IdentityOrientation())

	got, _ := p.Project(hit)
	assertVectorNear(t, geometry.NewVector3(0, 0, 0.5), got)
}

func TestProjectIgnoresIncompleteHits(t *testing.T) {
	p := Projector{Offset: 0.015}

	_, ok := p.Project(Hit{Point: geometry.NewVector3(1, 1, 1), HasPoint: true})
	assert.False(t, ok)
	_, ok = p.Project(Hit{FaceNormal: geometry.NewVector3(0, 1, 0), HasFace: true})
	assert.False(t, ok)
}
