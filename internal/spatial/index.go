// Package spatial provides a static radius-query index over 2D points.
package spatial

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// ErrEmpty is returned by Build when no coordinates are supplied.
var ErrEmpty = errors.New("spatial: no points to index")

// Coord is a point in the index's plane. For geographic data X is the
// longitude and Y the latitude, both in degrees.
type Coord struct {
	X, Y float64
}

// site is an indexed coordinate tagged with its input position.
type site struct {
	x, y float64
	id   int
}

// Compare returns the signed distance of s from the plane through c
// perpendicular to d.
func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	o := c.(site)
	if d == 0 {
		return s.x - o.x
	}
	return s.y - o.y
}

func (s site) Dims() int { return 2 }

// Distance is the squared Euclidean distance, matching the metric the
// kdtree keepers expect.
func (s site) Distance(c kdtree.Comparable) float64 {
	o := c.(site)
	dx := s.x - o.x
	dy := s.y - o.y
	return dx*dx + dy*dy
}

// sites is the kdtree.Interface used while building.
type sites []site

func (s sites) Index(i int) kdtree.Comparable { return s[i] }

func (s sites) Len() int { return len(s) }

func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

// Pivot orders the range along d and returns its median. Ties are broken by
// id so the tree shape depends only on the input.
func (s sites) Pivot(d kdtree.Dim) int {
	if d == 0 {
		slices.SortFunc(s, func(a, b site) int { return cmp.Or(cmp.Compare(a.x, b.x), cmp.Compare(a.id, b.id)) })
	} else {
		slices.SortFunc(s, func(a, b site) int { return cmp.Or(cmp.Compare(a.y, b.y), cmp.Compare(a.id, b.id)) })
	}
	return len(s) / 2
}

// Index is an immutable k-d tree over a set of coordinates. It never changes
// after Build, so any number of goroutines may query it concurrently.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// Build indexes coords. The position of each coordinate in the slice is the
// id reported by queries.
func Build(coords []Coord) (*Index, error) {
	if len(coords) == 0 {
		return nil, ErrEmpty
	}
	pts := make(sites, len(coords))
	for i, c := range coords {
		pts[i] = site{x: c.X, y: c.Y, id: i}
	}
	return &Index{tree: kdtree.New(pts, false), n: len(pts)}, nil
}

// Len reports the number of indexed points.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.n
}

// Within returns the ids of all points whose Euclidean distance from (x, y)
// is at most radius, in ascending id order. Points exactly on the boundary
// are included.
func (idx *Index) Within(x, y, radius float64) []int {
	if idx == nil || idx.tree == nil || radius < 0 || math.IsNaN(radius) {
		return nil
	}
	keep := kdtree.NewDistKeeper(radius * radius)
	idx.tree.NearestSet(keep, site{x: x, y: y, id: -1})

	var ids []int
	for _, c := range keep.Heap {
		// The keeper's distance sentinel carries no Comparable.
		s, ok := c.Comparable.(site)
		if !ok {
			continue
		}
		ids = append(ids, s.id)
	}
	slices.Sort(ids)
	return ids
}
