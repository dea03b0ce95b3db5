package taxonomy

import (
	"sort"
	"strings"
)

// Tree is the immutable, arena-indexed taxonomy (spec.md §9 design
// note: "becomes an arena of taxon nodes indexed by id"). It is built
// once when a file set opens and never mutated afterward (spec.md
// §5's "immutable after build" resource rule).
type Tree struct {
	nodes map[uint32]*Node
	root  uint32

	// nameIndex maps a normalized name to every taxon id that carries
	// it under any name variant; built eagerly (spec.md §5: "the
	// name-to-ids map is eagerly loaded").
	nameIndex map[string][]uint32
}

// RootID returns the tree's root taxon id (always 1, per spec.md §3).
func (t *Tree) RootID() uint32 { return t.root }

// Node returns the node for id, or nil if id is unknown.
func (t *Tree) Node(id uint32) *Node { return t.nodes[id] }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// AllNodes returns every node in the tree, order unspecified. Callers
// needing a deterministic order should sort by ID themselves.
func (t *Tree) AllNodes() []*Node {
	out := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, n)
	}
	return out
}

// Build constructs a Tree from raw nodes (parent/children/names
// already populated, value-edges and partitions not yet computed) and
// computes the value-tree projection and name index.
//
// nodes must form a single rooted tree at id 1 (spec.md §3 invariant);
// Build does not itself validate that — callers (internal/fileset)
// are expected to have already merged a consistent, whole-tree view
// before calling Build.
func Build(nodes map[uint32]*Node) *Tree {
	t := &Tree{nodes: nodes, root: 1, nameIndex: make(map[string][]uint32)}
	t.buildNameIndex()
	t.buildValueTree()
	return t
}

func (t *Tree) buildNameIndex() {
	ids := make([]uint32, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		n := t.nodes[id]
		for _, nm := range n.Names {
			key := Normalize(nm.Text)
			t.nameIndex[key] = append(t.nameIndex[key], id)
		}
	}
}

// Normalize lower-cases, collapses internal whitespace and strips
// surrounding quotes, per spec.md §4.4's term-resolution rule.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

// Ancestors returns id's ancestor chain (excluding id itself), root
// last, following raw parent edges.
func (t *Tree) Ancestors(id uint32) []uint32 {
	var out []uint32
	cur := id
	for {
		n := t.nodes[cur]
		if n == nil || n.ParentID == 0 || n.ParentID == cur {
			break
		}
		out = append(out, n.ParentID)
		cur = n.ParentID
	}
	return out
}

// Descendants returns every node reachable from id via raw children
// edges (pre-order, deterministic by ascending id at each level).
func (t *Tree) Descendants(id uint32) []uint32 {
	var out []uint32
	n := t.nodes[id]
	if n == nil {
		return out
	}
	children := append([]uint32(nil), n.ChildrenIDs...)
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	for _, c := range children {
		out = append(out, c)
		out = append(out, t.Descendants(c)...)
	}
	return out
}

// ValueAncestors returns the subset of id's ancestors that are
// themselves data-bearing — membership-equivalent to walking the
// collapsed value-parent edges repeatedly, but computed by filtering
// the raw chain, which sidesteps the "value_parent may point to self"
// edge case for a data-bearing id (spec.md §3/§9).
func (t *Tree) ValueAncestors(id uint32) []uint32 {
	var out []uint32
	for _, a := range t.Ancestors(id) {
		if n := t.nodes[a]; n != nil && n.HasFamilies() {
			out = append(out, a)
		}
	}
	return out
}

// ValueDescendants returns the subset of id's descendants that are
// themselves data-bearing. Every data-bearing descendant is reached
// by some chain of nearest-value-children hops, so this set is
// identical to repeatedly expanding ValueChildrenIDs — computed here
// by filtering the raw descendant set, which is simpler and avoids
// double-walking the tree.
func (t *Tree) ValueDescendants(id uint32) []uint32 {
	var out []uint32
	for _, d := range t.Descendants(id) {
		if n := t.nodes[d]; n != nil && n.HasFamilies() {
			out = append(out, d)
		}
	}
	return out
}

// PartitionOf returns the partition number that owns id's families.
func (t *Tree) PartitionOf(id uint32) (int, bool) {
	n := t.nodes[id]
	if n == nil {
		return 0, false
	}
	return n.Partition, true
}
