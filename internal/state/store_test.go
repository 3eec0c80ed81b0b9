package state

import (
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line2D(xs ...float64) Path {
	p := Path{Color: DefaultStyle().Color, Width: 4}
	for _, x := range xs {
		p.Points = append(p.Points, geometry.NewPoint(x, x))
	}
	return p
}

func line3D(id string, xs ...float64) Path3D {
	p := Path3D{ID: id, Color: DefaultStyle().Color, Width: 4}
	for _, x := range xs {
		p.Points = append(p.Points, geometry.NewVector3(x, 0, 0))
	}
	return p
}

func TestAppendRefusesDegeneratePaths(t *testing.T) {
	s := NewStore()

	assert.False(t, s.Append(line2D()))
	assert.False(t, s.Append(line2D(1)))
	zeroWidth := line2D(1, 2)
	zeroWidth.Width = 0
	assert.False(t, s.Append(zeroWidth))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, uint64(0), s.Revision2D())

	assert.True(t, s.Append(line2D(1, 2)))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, uint64(1), s.Revision2D())
}

func TestAppendCopiesPoints(t *testing.T) {
	s := NewStore()
	p := line2D(1, 2, 3)
	require.True(t, s.Append(p))

	p.Points[0] = geometry.NewPoint(99, 99)
	assert.Equal(t, geometry.NewPoint(1, 1), s.Paths()[0].Points[0])
}

func TestPopRemovesMostRecent(t *testing.T) {
	s := NewStore()
	s.Append(line2D(1, 2))
	s.Append(line2D(3, 4))

	p, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, geometry.NewPoint(3, 3), p.Points[0])
	assert.Equal(t, 1, s.Len())

	s.Pop()
	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestAppend3DRefusesDuplicateIDs(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Append3D(line3D("a", 0, 1)))
	assert.False(t, s.Append3D(line3D("a", 2, 3)))
	assert.False(t, s.Append3D(line3D("", 2, 3)))
	assert.False(t, s.Append3D(line3D("b", 2)))
	assert.Equal(t, 1, s.Len3D())
}

func TestRemove3D(t *testing.T) {
	s := NewStore()
	s.Append3D(line3D("a", 0, 1))
	s.Append3D(line3D("b", 2, 3))
	s.Append3D(line3D("c", 4, 5))
	rev := s.Revision3D()

	assert.True(t, s.Remove3D("b"))
	assert.False(t, s.Remove3D("b"))
	assert.Greater(t, s.Revision3D(), rev)

	ids := []string{}
	for _, p := range s.Paths3D() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)

	_, ok := s.Lookup3D("b")
	assert.False(t, ok)
	p, ok := s.Lookup3D("c")
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(4, 0, 0), p.Points[0])
}

func TestObserverSeesEveryMutation(t *testing.T) {
	s := NewStore()
	var kinds []ChangeKind
	s.Observe(func(c Change) { kinds = append(kinds, c.Kind) })

	s.Append(line2D(1, 2))
	s.Append(line2D(1))
	s.Pop()
	s.Append(line2D(1, 2))
	s.Clear2D()
	s.Clear2D()
	s.Append3D(line3D("a", 0, 1))
	s.Append3D(line3D("b", 0, 1))
	s.Remove3D("a")
	s.Pop3D()
	s.Append3D(line3D("c", 0, 1))
	s.Clear3D()

	assert.Equal(t, []ChangeKind{
		Committed2D, Popped2D, Committed2D, Cleared2D,
		Committed3D, Committed3D, Removed3D, Removed3D, Committed3D, Cleared3D,
	}, kinds)
}
