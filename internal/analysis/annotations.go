// Package analysis measures annotation collections: stroke lengths, segment
// statistics and the extent of the surface annotations.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

// PathStats describes one stored path
type PathStats struct {
	Index  int
	ID     string
	Points int
	Length float64
	Width  float64
	Eraser bool
}

// Summary contains measurements of both path collections
type Summary struct {
	Paths2D []PathStats
	Paths3D []PathStats

	Pencil2D int
	Eraser2D int
	Length2D float64 // pencil ink only, in pixels
	Erased2D float64 // eraser travel, in pixels

	Length3D     float64
	Bounds3D     geometry.BoundingBox
	SegmentCount int
	MinSegment   float64
	MaxSegment   float64
	AvgSegment   float64
}

// Summarize measures the 2D and 3D collections
func Summarize(paths []state.Path, paths3D []state.Path3D) *Summary {
	s := &Summary{
		Paths2D:  make([]PathStats, 0, len(paths)),
		Paths3D:  make([]PathStats, 0, len(paths3D)),
		Bounds3D: geometry.NewBoundingBox(),
	}

	for i, p := range paths {
		length := Length2D(p.Points)
		s.Paths2D = append(s.Paths2D, PathStats{
			Index:  i,
			Points: len(p.Points),
			Length: length,
			Width:  p.Width,
			Eraser: p.IsEraser,
		})
		if p.IsEraser {
			s.Eraser2D++
			s.Erased2D += length
		} else {
			s.Pencil2D++
			s.Length2D += length
		}
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	for i, p := range paths3D {
		length := 0.0
		for j, v := range p.Points {
			s.Bounds3D.Extend(v)
			if j == 0 {
				continue
			}
			d := p.Points[j-1].Distance(v)
			length += d
			s.SegmentCount++
			minLength = math.Min(minLength, d)
			maxLength = math.Max(maxLength, d)
		}
		s.Paths3D = append(s.Paths3D, PathStats{
			Index:  i,
			ID:     p.ID,
			Points: len(p.Points),
			Length: length,
			Width:  p.Width,
		})
		s.Length3D += length
	}

	if s.SegmentCount > 0 {
		s.MinSegment = minLength
		s.MaxSegment = maxLength
		s.AvgSegment = s.Length3D / float64(s.SegmentCount)
	}
	return s
}

// Length2D returns the length of a screen-space polyline
func Length2D(points []geometry.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// Length3D returns the length of a world-space polyline
func Length3D(points []geometry.Vector3) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// LongestPaths3D returns the N longest surface paths
func LongestPaths3D(s *Summary, count int) []PathStats {
	paths := make([]PathStats, len(s.Paths3D))
	copy(paths, s.Paths3D)

	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Length > paths[j].Length
	})

	if count > len(paths) {
		count = len(paths)
	}

	return paths[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
