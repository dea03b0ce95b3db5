package taxonomy

import "testing"

// buildSample constructs a small tree:
//
//	1 (root)
//	└─ 2 (Mammalia)
//	   ├─ 9606 (Homo sapiens)        -- data-bearing
//	   └─ 10090 (Mus musculus)
//	      └─ 10091 (Mus musculus domesticus) -- data-bearing
func buildSample() *Tree {
	nodes := map[uint32]*Node{
		1: {ID: 1, ParentID: 1, ChildrenIDs: []uint32{2},
			Names: []Name{{Kind: KindScientific, Text: "root"}}},
		2: {ID: 2, ParentID: 1, ChildrenIDs: []uint32{9606, 10090},
			Names: []Name{{Kind: KindScientific, Text: "Mammalia"}}},
		9606: {ID: 9606, ParentID: 2,
			Names:            []Name{{Kind: KindScientific, Text: "Homo sapiens"}, {Kind: KindCommon, Text: "human"}},
			FamilyAccessions: []string{"DF000000001"}},
		10090: {ID: 10090, ParentID: 2, ChildrenIDs: []uint32{10091},
			Names: []Name{{Kind: KindScientific, Text: "Mus musculus"}}},
		10091: {ID: 10091, ParentID: 10090,
			Names:            []Name{{Kind: KindScientific, Text: "Mus musculus domesticus"}},
			FamilyAccessions: []string{"DF000000002"}},
	}
	return Build(nodes)
}

func TestValueTree(t *testing.T) {
	tr := buildSample()

	if got := tr.Node(9606).ValueParentID; got != 9606 {
		t.Errorf("9606 ValueParentID = %d, want 9606 (self, data-bearing)", got)
	}
	if got := tr.Node(2).ValueParentID; got != 0 {
		t.Errorf("2 ValueParentID = %d, want 0 (no data-bearing ancestor)", got)
	}
	if got := tr.Node(10090).ValueParentID; got != 0 {
		t.Errorf("10090 ValueParentID = %d, want 0", got)
	}

	children := tr.Node(2).ValueChildrenIDs
	if len(children) != 2 || children[0] != 9606 || children[1] != 10091 {
		t.Errorf("node 2 ValueChildrenIDs = %v, want [9606 10091] (nearest data-bearing descendants)", children)
	}
}

func TestAncestorsDescendants(t *testing.T) {
	tr := buildSample()

	anc := tr.Ancestors(10091)
	if len(anc) != 3 || anc[0] != 10090 || anc[1] != 2 || anc[2] != 1 {
		t.Errorf("Ancestors(10091) = %v, want [10090 2 1]", anc)
	}

	desc := tr.Descendants(2)
	if len(desc) != 3 {
		t.Errorf("Descendants(2) = %v, want 3 nodes", desc)
	}

	vanc := tr.ValueAncestors(10091)
	if len(vanc) != 0 {
		t.Errorf("ValueAncestors(10091) = %v, want empty (no data-bearing ancestor)", vanc)
	}
	vdesc := tr.ValueDescendants(1)
	if len(vdesc) != 2 {
		t.Errorf("ValueDescendants(1) = %v, want 2 data-bearing nodes", vdesc)
	}
}

func TestResolve(t *testing.T) {
	tr := buildSample()

	r := tr.Resolve("Homo sapiens")
	if id, ok := r.Unambiguous(); !ok || id != 9606 {
		t.Fatalf("Resolve(Homo sapiens) = %+v, want unambiguous 9606", r)
	}

	r = tr.Resolve("9606")
	if id, ok := r.Unambiguous(); !ok || id != 9606 {
		t.Fatalf("Resolve(9606) = %+v, want unambiguous 9606", r)
	}

	r = tr.Resolve("Mus")
	if r.Empty() {
		t.Fatalf("Resolve(Mus) should partially match Mus musculus and Mus musculus domesticus")
	}
	if _, ok := r.Unambiguous(); ok {
		t.Errorf("Resolve(Mus) should be ambiguous, got unambiguous match")
	}

	r = tr.Resolve("nonexistent taxon name")
	if !r.Empty() {
		t.Errorf("Resolve(nonexistent) should be empty, got %+v", r)
	}
}

func TestSuggest(t *testing.T) {
	tr := buildSample()
	s := tr.Suggest("Homo sapien")
	if len(s) == 0 {
		t.Fatal("Suggest(Homo sapien) returned nothing")
	}
	if s[0].ID != 9606 {
		t.Errorf("Suggest(Homo sapien)[0].ID = %d, want 9606", s[0].ID)
	}
}

func TestBuildLineage(t *testing.T) {
	tr := buildSample()

	tree := tr.BuildLineage(9606, true, false, true)
	path := Path(tree, tree)
	if len(path) != 1 || path[0] != 1 {
		t.Fatalf("unexpected self-path %v", path)
	}

	leaves := Leaves(tree)
	if len(leaves) != 1 || leaves[0].ID != 9606 {
		t.Fatalf("leaves = %v, want [9606]", leaves)
	}
	full := Path(tree, leaves[0])
	if len(full) != 3 || full[0] != 1 || full[1] != 2 || full[2] != 9606 {
		t.Errorf("full root-to-leaf path = %v, want [1 2 9606]", full)
	}

	treeD := tr.BuildLineage(2, false, true, true)
	if treeD.ID != 2 || len(treeD.Children) != 2 {
		t.Fatalf("descendant tree from 2 = %+v, want 2 children", treeD)
	}
}
