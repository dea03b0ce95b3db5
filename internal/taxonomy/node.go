// Package taxonomy implements the NCBI-derived taxon tree and its
// query operations (spec.md §4.4): parent/child and value-parent/
// value-child edges, name resolution, lineage walks, the suggestion
// heuristic, and partition/family-count lookups.
package taxonomy

// NameKind enumerates the taxon name variants spec.md §3 lists.
type NameKind string

const (
	KindScientific    NameKind = "scientific"
	KindCommon        NameKind = "common"
	KindGenBankCommon NameKind = "genbank common"
	KindSynonym       NameKind = "synonym"
	KindAuthority     NameKind = "authority"
	KindIncludes      NameKind = "includes"
	KindEquivalent    NameKind = "equivalent"
)

// Name is one {kind, text} entry in a taxon's name list.
type Name struct {
	Kind NameKind
	Text string
}

// Node is one taxon in the tree, addressed by NCBI taxid.
type Node struct {
	ID    uint32
	Names []Name

	ParentID    uint32
	ChildrenIDs []uint32

	// Value-parent/value-children are the collapsed projection that
	// skips taxa with no associated families (spec.md §3/§9 Open
	// Question #1, resolved as "nearest" in DESIGN.md).
	ValueParentID    uint32
	ValueChildrenIDs []uint32

	Partition int

	// FamilyAccessions is populated only in the partition file that
	// owns this node (spec.md §3 "Ownership").
	FamilyAccessions []string
}

// HasFamilies reports whether this node is itself data-bearing.
func (n *Node) HasFamilies() bool {
	return len(n.FamilyAccessions) > 0
}

// ScientificName returns the first scientific name, or "" if absent.
func (n *Node) ScientificName() string {
	for _, nm := range n.Names {
		if nm.Kind == KindScientific {
			return nm.Text
		}
	}
	return ""
}

// CommonName returns the first common or genbank-common name, or "".
func (n *Node) CommonName() string {
	for _, nm := range n.Names {
		if nm.Kind == KindCommon || nm.Kind == KindGenBankCommon {
			return nm.Text
		}
	}
	return ""
}

// DisplayName returns the scientific name, falling back to the first
// common name, matching spec.md §4.6's "lineage" pretty-format rule.
func (n *Node) DisplayName() string {
	if s := n.ScientificName(); s != "" {
		return s
	}
	if c := n.CommonName(); c != "" {
		return c
	}
	if len(n.Names) > 0 {
		return n.Names[0].Text
	}
	return ""
}
