package state

import (
	"slices"

	"github.com/philipparndt/gosketch/internal/logging"
)

// ChangeKind identifies a mutation of the Store
type ChangeKind int

const (
	Committed2D ChangeKind = iota
	Popped2D
	Cleared2D
	Committed3D
	Removed3D
	Cleared3D
)

var changeNames = [...]string{"committed2d", "popped2d", "cleared2d", "committed3d", "removed3d", "cleared3d"}

func (k ChangeKind) String() string {
	if int(k) < len(changeNames) {
		return changeNames[k]
	}
	return "unknown"
}

// Change describes one Store mutation. Path is set for Committed2D and
// Popped2D, Path3D for Committed3D and Removed3D.
type Change struct {
	Kind   ChangeKind
	Path   Path
	Path3D Path3D
}

// Observer is called synchronously after every mutation
type Observer func(Change)

// Store holds the committed 2D and 3D paths in insertion order.
// Paths with fewer than two points or a non-positive width are refused, as
// are 3D paths whose id is empty or already present.
type Store struct {
	paths      []Path
	paths3D    []Path3D
	revision2D uint64
	revision3D uint64
	observers  []Observer
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Observe registers fn for all future mutations
func (s *Store) Observe(fn Observer) {
	s.observers = append(s.observers, fn)
}

func (s *Store) notify(c Change) {
	for _, fn := range s.observers {
		fn(c)
	}
}

// Append commits a 2D path and reports whether it was stored
func (s *Store) Append(p Path) bool {
	if len(p.Points) < 2 || p.Width <= 0 {
		logging.Logger().Debug("refusing degenerate 2D path", "points", len(p.Points), "width", p.Width)
		return false
	}
	p = p.clone()
	s.paths = append(s.paths, p)
	s.revision2D++
	s.notify(Change{Kind: Committed2D, Path: p})
	return true
}

// Pop removes the most recent 2D path
func (s *Store) Pop() (Path, bool) {
	if len(s.paths) == 0 {
		return Path{}, false
	}
	last := s.paths[len(s.paths)-1]
	s.paths = s.paths[:len(s.paths)-1]
	s.revision2D++
	s.notify(Change{Kind: Popped2D, Path: last})
	return last, true
}

// Clear2D removes every 2D path
func (s *Store) Clear2D() {
	if len(s.paths) == 0 {
		return
	}
	s.paths = nil
	s.revision2D++
	s.notify(Change{Kind: Cleared2D})
}

// Paths returns the 2D paths in commit order. The slice is a copy; the point
// slices are shared and must not be modified.
func (s *Store) Paths() []Path {
	return slices.Clone(s.paths)
}

// Len returns the number of 2D paths
func (s *Store) Len() int {
	return len(s.paths)
}

// Revision2D increases with every 2D mutation
func (s *Store) Revision2D() uint64 {
	return s.revision2D
}

// Append3D commits a 3D path and reports whether it was stored
func (s *Store) Append3D(p Path3D) bool {
	if len(p.Points) < 2 || p.Width <= 0 || p.ID == "" {
		logging.Logger().Debug("refusing degenerate 3D path", "id", p.ID, "points", len(p.Points), "width", p.Width)
		return false
	}
	if s.index3D(p.ID) >= 0 {
		logging.Logger().Debug("refusing duplicate 3D path id", "id", p.ID)
		return false
	}
	p = p.clone()
	s.paths3D = append(s.paths3D, p)
	s.revision3D++
	s.notify(Change{Kind: Committed3D, Path3D: p})
	return true
}

func (s *Store) index3D(id string) int {
	return slices.IndexFunc(s.paths3D, func(p Path3D) bool { return p.ID == id })
}

// Remove3D deletes the 3D path with the given id
func (s *Store) Remove3D(id string) bool {
	i := s.index3D(id)
	if i < 0 {
		return false
	}
	removed := s.paths3D[i]
	s.paths3D = slices.Delete(s.paths3D, i, i+1)
	s.revision3D++
	s.notify(Change{Kind: Removed3D, Path3D: removed})
	return true
}

// Pop3D removes the most recent 3D path
func (s *Store) Pop3D() (Path3D, bool) {
	if len(s.paths3D) == 0 {
		return Path3D{}, false
	}
	last := s.paths3D[len(s.paths3D)-1]
	s.paths3D = s.paths3D[:len(s.paths3D)-1]
	s.revision3D++
	s.notify(Change{Kind: Removed3D, Path3D: last})
	return last, true
}

// Clear3D removes every 3D path
func (s *Store) Clear3D() {
	if len(s.paths3D) == 0 {
		return
	}
	s.paths3D = nil
	s.revision3D++
	s.notify(Change{Kind: Cleared3D})
}

// Paths3D returns the 3D paths in commit order. The slice is a copy; the
// point slices are shared and must not be modified.
func (s *Store) Paths3D() []Path3D {
	return slices.Clone(s.paths3D)
}

// Len3D returns the number of 3D paths
func (s *Store) Len3D() int {
	return len(s.paths3D)
}

// Lookup3D finds a 3D path by id
func (s *Store) Lookup3D(id string) (Path3D, bool) {
	i := s.index3D(id)
	if i < 0 {
		return Path3D{}, false
	}
	return s.paths3D[i], true
}

// Revision3D increases with every 3D mutation
func (s *Store) Revision3D() uint64 {
	return s.revision3D
}
