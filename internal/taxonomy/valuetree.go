package taxonomy

import "sort"

// buildValueTree computes ValueParentID and ValueChildrenIDs for every
// node: a single bottom-up pass that stops descending a branch as
// soon as it finds a data-bearing node (DESIGN.md Open Question #1,
// "nearest" reading of spec.md §3/§9).
//
// ValueParentID(x) is the nearest ancestor holding >=1 family, or x
// itself if x is data-bearing (spec.md §3's literal field
// definition). ValueChildrenIDs(x) is the complementary edge: the set
// of data-bearing descendants reached without passing through another
// data-bearing node first.
func (t *Tree) buildValueTree() {
	ids := make([]uint32, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		n := t.nodes[id]
		if n.HasFamilies() {
			n.ValueParentID = id
			continue
		}
		n.ValueParentID = t.nearestDataBearingAncestor(id)
	}

	// Nearest value-children: for every data-bearing node d, climb
	// from d's real parent until a data-bearing node (or the root) is
	// found; d becomes a value-child of every node passed on the way,
	// that last node included. A data-bearing node never contributes a
	// value-child edge to itself.
	for _, id := range ids {
		n := t.nodes[id]
		if !n.HasFamilies() {
			continue
		}
		for cur := n.ParentID; cur != 0 && cur != id; {
			p := t.nodes[cur]
			if p == nil {
				break
			}
			p.ValueChildrenIDs = append(p.ValueChildrenIDs, id)
			if p.HasFamilies() || p.ParentID == cur {
				break
			}
			cur = p.ParentID
		}
	}
	for _, id := range ids {
		n := t.nodes[id]
		sort.Slice(n.ValueChildrenIDs, func(i, j int) bool {
			return n.ValueChildrenIDs[i] < n.ValueChildrenIDs[j]
		})
	}
}

// nearestDataBearingAncestor climbs the raw parent chain starting at
// id itself and returns the first data-bearing node found, or 0 if
// none exists before the root is exhausted.
func (t *Tree) nearestDataBearingAncestor(id uint32) uint32 {
	cur := id
	for {
		n := t.nodes[cur]
		if n == nil {
			return 0
		}
		if n.HasFamilies() {
			return cur
		}
		if n.ParentID == 0 || n.ParentID == cur {
			return 0
		}
		cur = n.ParentID
	}
}
