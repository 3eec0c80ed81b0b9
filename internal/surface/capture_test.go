package surface

import (
	"fmt"
	"testing"

	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapture(t *testing.T) (*state.State, *Capture) {
	t.Helper()
	st := state.New(state.DefaultStyle())
	st.SetTool(state.Pencil3D)
	n := 0
	c := NewCapture(st, DefaultConfig(), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("stroke-%d", n)
	}))
	return st, c
}

// hitAt returns a hit on a floor facing +Z
func hitAt(x, y float64) Hit {
	return NewHit(geometry.NewVector3(x, y, 0), geometry.NewVector3(0, 0, 1), geometry.IdentityOrientation())
}

func TestCaptureCommitsOnGlobalUp(t *testing.T) {
	st, c := newCapture(t)

	c.OnSurfaceDown(hitAt(0, 0))
	c.OnSurfaceMove(hitAt(0.1, 0))
	c.OnSurfaceMove(hitAt(0.2, 0))
	assert.Equal(t, 0, st.Store().Len3D())

	c.OnGlobalUp()
	paths := st.Store().Paths3D()
	require.Len(t, paths, 1)
	assert.Equal(t, "stroke-1", paths[0].ID)
	assert.Len(t, paths[0].Points, 3)
	assertVectorNear(t, geometry.NewVector3(0.1, 0, 0.015), paths[0].Points[1])
	assert.Equal(t, 4.0, paths[0].Width)
	assert.Equal(t, state.DefaultStyle().Color, paths[0].Color)
	assert.False(t, c.Capturing())
}

func TestCaptureDecimatesNearbyPoints(t *testing.T) {
	st, c := newCapture(t)

	c.OnSurfaceDown(hitAt(0, 0))
	c.OnSurfaceMove(hitAt(0.01, 0))
	c.OnSurfaceMove(hitAt(0.015, 0))
	assert.Len(t, c.Pending(), 1)

	c.OnSurfaceMove(hitAt(0.019, 0))
	assert.Len(t, c.Pending(), 1)

	c.OnSurfaceMove(hitAt(0.05, 0))
	c.OnSurfaceMove(hitAt(0.06, 0))
	c.OnSurfaceMove(hitAt(0.1, 0))
	assert.Len(t, c.Pending(), 3)

	c.OnGlobalUp()
	require.Equal(t, 1, st.Store().Len3D())
}

func TestCaptureDiscardsSinglePointStroke(t *testing.T) {
	st, c := newCapture(t)

	c.OnSurfaceDown(hitAt(0, 0))
	c.OnSurfaceMove(hitAt(0.001, 0))
	c.OnGlobalUp()

	assert.Equal(t, 0, st.Store().Len3D())
	assert.False(t, c.Capturing())
}

func TestCaptureSurvivesLeavingTheMesh(t *testing.T) {
	st, c := newCapture(t)

	c.OnSurfaceDown(hitAt(0, 0))
	c.OnSurfaceMove(hitAt(0.5, 0))
	c.OnSurfaceLeave()
	assert.True(t, c.Capturing())
	_, ok := c.Indicator()
	assert.False(t, ok)

	c.OnSurfaceMove(hitAt(1, 0))
	c.OnGlobalUp()

	paths := st.Store().Paths3D()
	require.Len(t, paths, 1)
	assert.Len(t, paths[0].Points, 3)
}

func TestCaptureIgnoresIncompleteHits(t *testing.T) {
	st, c := newCapture(t)

	c.OnSurfaceDown(Hit{Point: geometry.NewVector3(0, 0, 0), HasPoint: true})
	assert.False(t, c.Capturing())
	_, ok := c.Hover()
	assert.False(t, ok)

	c.OnSurfaceDown(hitAt(0, 0))
	c.OnSurfaceMove(Hit{})
	c.OnSurfaceMove(hitAt(1, 0))
	c.OnGlobalUp()
	require.Equal(t, 1, st.Store().Len3D())
	assert.Len(t, st.Store().Paths3D()[0].Points, 2)
}

func TestCaptureOnlyForPencil3D(t *testing.T) {
	for _, tool := range []state.Tool{state.View, state.Pencil, state.Eraser, state.Eraser3D} {
		st, c := newCapture(t)
		st.SetTool(tool)

		c.OnSurfaceDown(hitAt(0, 0))
		c.OnSurfaceMove(hitAt(1, 0))
		c.OnGlobalUp()
		assert.Equal(t, 0, st.Store().Len3D(), tool.String())
	}
}

func TestToolSwitchDiscards3DStroke(t *testing.T) {
	st, c := newCapture(t)

	c.OnSurfaceDown(hitAt(0, 0))
	c.OnSurfaceMove(hitAt(1, 0))
	st.SetTool(state.Eraser3D)
	st.SetTool(state.Pencil3D)
	c.OnGlobalUp()

	assert.Equal(t, 0, st.Store().Len3D())
}

func TestIdsAreUnique(t *testing.T) {
	st := state.New(state.DefaultStyle())
	st.SetTool(state.Pencil3D)
	c := NewCapture(st, DefaultConfig())

	for i := 0; i < 20; i++ {
		c.OnSurfaceDown(hitAt(0, float64(i)))
		c.OnSurfaceMove(hitAt(1, float64(i)))
		c.OnGlobalUp()
	}

	ids := map[string]bool{}
	for _, p := range st.Store().Paths3D() {
		ids[p.ID] = true
	}
	assert.Len(t, ids, 20)
}

func TestIndicatorFollowsActiveTool(t *testing.T) {
	st, c := newCapture(t)

	_, ok := c.Indicator()
	assert.False(t, ok)

	c.OnSurfaceMove(hitAt(1, 1))
	ind, ok := c.Indicator()
	require.True(t, ok)
	assertVectorNear(t, geometry.NewVector3(1, 1, 0.015), ind.Center)
	assert.InDelta(t, 4.0/200, ind.Radius, 1e-12)
	assert.False(t, ind.Eraser)

	st.SetTool(state.Eraser3D)
	ind, ok = c.Indicator()
	require.True(t, ok)
	assert.InDelta(t, 40.0/400, ind.Radius, 1e-12)
	assert.True(t, ind.Eraser)

	st.SetTool(state.Pencil)
	_, ok = c.Indicator()
	assert.False(t, ok)
}
