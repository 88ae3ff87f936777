// Package disjointset implements a union-find forest over the integers [0, n).
package disjointset

// Set tracks which elements belong to the same connected component.
// Elements are flattened indices; callers must stay within [0, Len()).
type Set struct {
	parent []int // parent[i] == i marks a root.
	count  int   // number of disjoint sets.
}

// New returns a Set of n singletons.
func New(n int) *Set {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	return &Set{
		parent: parent,
		count:  n,
	}
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return len(s.parent)
}

// Count returns the number of disjoint sets.
func (s *Set) Count() int {
	return s.count
}

// Find returns the representative of the set containing i.
// Every node on the walked path is re-pointed directly at the root.
func (s *Set) Find(i int) int {
	root := i
	for s.parent[root] != root {
		root = s.parent[root]
	}

	for s.parent[i] != root {
		next := s.parent[i]
		s.parent[i] = root
		i = next
	}

	return root
}

// Union merges the sets containing i and j. The root of i is attached
// under the root of j. It does nothing when both are already joined.
func (s *Set) Union(i, j int) {
	rootI := s.Find(i)
	rootJ := s.Find(j)
	if rootI == rootJ {
		return
	}

	s.parent[rootI] = rootJ
	s.count--
}

// Connected reports whether i and j belong to the same set.
func (s *Set) Connected(i, j int) bool {
	return s.Find(i) == s.Find(j)
}

// Roots returns the distinct representatives over all elements.
func (s *Set) Roots() map[int]struct{} {
	roots := make(map[int]struct{})
	for i := range s.parent {
		roots[s.Find(i)] = struct{}{}
	}

	return roots
}
