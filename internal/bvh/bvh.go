// Package bvh implements a bounding volume hierarchy over boundable,
// ray-intersectable primitives. Nodes live in a flat arena addressed by
// index; construction runs two iterative passes (top-down centroid split,
// bottom-up box aggregation) so pathological inputs cannot exhaust the
// call stack.
package bvh

import (
	"github.com/vk/thermenv/internal/geometry"
)

// Primitive is anything the tree can index: it knows its bounding box and
// can test a ray against its exact geometry.
type Primitive interface {
	AABB() geometry.AABB
	IntersectRay(ray geometry.Ray) (float64, bool)
}

const noChild = -1

// node is one arena entry. Leaves hold a slice of primitives and have no
// children; internal nodes hold child indexes only.
type node[T Primitive] struct {
	box         geometry.AABB
	left, right int
	elems       []T
}

func (n *node[T]) isLeaf() bool { return n.left == noChild }

// Tree is an immutable BVH. The zero value is not usable; use Build.
type Tree[T Primitive] struct {
	nodes []node[T]
}

// Build constructs the hierarchy. Groups of at most leafSize primitives
// become terminal nodes; larger groups are split at the centroid of the
// axis with the largest extent. A leafSize below 1 is treated as 1.
// An empty element list yields an empty tree whose traversal visits
// nothing.
func Build[T Primitive](elements []T, leafSize int) *Tree[T] {
	t := &Tree[T]{}
	if len(elements) == 0 {
		return t
	}
	if leafSize < 1 {
		leafSize = 1
	}

	type workItem struct {
		idx   int
		elems []T
	}

	// Top-down split phase with an explicit worklist. Parents are
	// allocated before their children, so every parent index is smaller
	// than its children's.
	t.nodes = append(t.nodes, node[T]{left: noChild, right: noChild})
	work := []workItem{{idx: 0, elems: elements}}
	for len(work) > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]

		if len(item.elems) <= leafSize {
			t.nodes[item.idx].elems = item.elems
			continue
		}
		left, right := partitionByCentroid(item.elems)
		if len(left) == 0 || len(right) == 0 {
			// Degenerate split (coincident centroids): keep as leaf.
			t.nodes[item.idx].elems = item.elems
			continue
		}
		li := len(t.nodes)
		t.nodes = append(t.nodes,
			node[T]{left: noChild, right: noChild},
			node[T]{left: noChild, right: noChild})
		t.nodes[item.idx].left = li
		t.nodes[item.idx].right = li + 1
		work = append(work, workItem{idx: li + 1, elems: right}, workItem{idx: li, elems: left})
	}

	// Bottom-up box aggregation: children always follow their parent in
	// the arena, so a reverse scan sees both children before the parent.
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if n.isLeaf() {
			n.box = boundsOf(n.elems)
			continue
		}
		n.box = t.nodes[n.left].box.Join(t.nodes[n.right].box)
	}
	return t
}

// partitionByCentroid splits elements in two groups around the mean
// centroid along the axis with the largest box extent.
func partitionByCentroid[T Primitive](elements []T) (left, right []T) {
	box := boundsOf(elements)
	dx := box.Max.X - box.Min.X
	dy := box.Max.Y - box.Min.Y
	dz := box.Max.Z - box.Min.Z

	axis := func(p geometry.Point3) float64 { return p.X }
	switch {
	case dx >= dy && dx >= dz:
		// axis already selects X
	case dy >= dz:
		axis = func(p geometry.Point3) float64 { return p.Y }
	default:
		axis = func(p geometry.Point3) float64 { return p.Z }
	}

	mean := 0.0
	for _, e := range elements {
		mean += axis(e.AABB().Center())
	}
	mean /= float64(len(elements))

	for _, e := range elements {
		if axis(e.AABB().Center()) < mean {
			left = append(left, e)
		} else {
			right = append(right, e)
		}
	}
	return left, right
}

func boundsOf[T Primitive](elements []T) geometry.AABB {
	box := geometry.EmptyAABB()
	for _, e := range elements {
		box = box.Join(e.AABB())
	}
	return box
}

// Root returns the bounding box of the whole tree and false for an empty
// tree.
func (t *Tree[T]) Root() (geometry.AABB, bool) {
	if len(t.nodes) == 0 {
		return geometry.AABB{}, false
	}
	return t.nodes[0].box, true
}

// Visit is one step of a ray traversal: the visited node's box, whether
// the node is terminal, and (for terminal nodes) the primitives it holds.
type Visit[T Primitive] struct {
	Box      geometry.AABB
	Terminal bool
	Elems    []T
}

// Walker iterates, in pre-order, over the nodes whose bounding box the
// ray hits. Intermediate nodes are yielded for diagnostics; terminal
// nodes carry the primitives to test. The walker holds only borrowed
// references into the tree and an explicit stack.
type Walker[T Primitive] struct {
	tree  *Tree[T]
	ray   geometry.Ray
	stack []int
}

// WalkRay starts a traversal for the given ray.
func (t *Tree[T]) WalkRay(ray geometry.Ray) *Walker[T] {
	w := &Walker[T]{tree: t, ray: ray}
	if len(t.nodes) > 0 {
		w.stack = append(w.stack, 0)
	}
	return w
}

// Next returns the next visited node, or false when the traversal is
// done.
func (w *Walker[T]) Next() (Visit[T], bool) {
	for len(w.stack) > 0 {
		idx := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		n := &w.tree.nodes[idx]
		if _, ok := n.box.IntersectRay(w.ray); !ok {
			continue
		}
		if !n.isLeaf() {
			w.stack = append(w.stack, n.right, n.left)
			return Visit[T]{Box: n.box}, true
		}
		return Visit[T]{Box: n.box, Terminal: true, Elems: n.elems}, true
	}
	return Visit[T]{}, false
}

// FirstHit reports the first primitive along the traversal whose exact
// geometry intersects the ray, short-circuiting at the first hit. The
// returned distance is the ray parameter t of that hit.
func (t *Tree[T]) FirstHit(ray geometry.Ray) (float64, bool) {
	w := t.WalkRay(ray)
	for {
		visit, ok := w.Next()
		if !ok {
			return 0, false
		}
		if !visit.Terminal {
			continue
		}
		for _, e := range visit.Elems {
			if dist, hit := e.IntersectRay(ray); hit {
				return dist, true
			}
		}
	}
}
