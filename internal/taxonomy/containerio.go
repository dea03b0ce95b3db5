package taxonomy

import (
	"encoding/json"
	"strconv"

	"github.com/Dfam-consortium/famdb-go/internal/container"
	"github.com/Dfam-consortium/famdb-go/internal/schema"
)

const (
	attrParent    = "parent"
	attrPartition = "partition"
	attrChildren  = "children"
	attrFamilies  = "family_accessions"
)

// PersistStructure writes every node's parent/partition/children
// attributes under /Taxonomy/Nodes/<id> (spec.md §4.2's layout). This
// is written once, into the root (partition 0) file, by the append/
// builder bridge.
func PersistStructure(c *container.Container, t *Tree) error {
	for id, n := range t.nodes {
		base := schema.TaxonNodePath(id)
		if err := c.SetAttr(base+"/"+attrParent, n.ParentID); err != nil {
			return err
		}
		if err := c.SetAttr(base+"/"+attrPartition, n.Partition); err != nil {
			return err
		}
		children := append([]uint32(nil), n.ChildrenIDs...)
		if err := c.SetAttr(base+"/"+attrChildren, children); err != nil {
			return err
		}
	}
	return nil
}

// PersistNames writes the /Taxonomy/Names dataset: a JSON object
// mapping each taxid to its [[kind,text],...] name list, per spec.md
// §4.2's explicit JSON requirement.
func PersistNames(c *container.Container, t *Tree) error {
	out := make(map[string][][2]string, len(t.nodes))
	for id, n := range t.nodes {
		pairs := make([][2]string, len(n.Names))
		for i, nm := range n.Names {
			pairs[i] = [2]string{string(nm.Kind), nm.Text}
		}
		out[strconv.FormatUint(uint64(id), 10)] = pairs
	}
	blob, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return c.WriteDataset(schema.DatasetTaxNames, blob, true)
}

// PersistFamilyAccessions writes the family_accessions attribute for
// every node owned by partition, into that partition's own file.
func PersistFamilyAccessions(c *container.Container, t *Tree, partition int) error {
	for id, n := range t.nodes {
		if n.Partition != partition || len(n.FamilyAccessions) == 0 {
			continue
		}
		base := schema.TaxonNodePath(id)
		accs := append([]string(nil), n.FamilyAccessions...)
		if err := c.SetAttr(base+"/"+attrFamilies, accs); err != nil {
			return err
		}
	}
	return nil
}

// AppendFamilyAccession adds acc to taxon id's family_accessions
// attribute in c, used by the append bridge to record a newly ingested
// family's ownership without rebuilding the whole in-memory Tree
// (which stays immutable after fileset.Open per spec.md §5).
func AppendFamilyAccession(c *container.Container, id uint32, acc string) error {
	base := schema.TaxonNodePath(id) + "/" + attrFamilies
	var accs []string
	if v, ok, _ := c.GetAttr(base); ok {
		accs, _ = v.([]string)
	}
	for _, a := range accs {
		if a == acc {
			return nil
		}
	}
	accs = append(accs, acc)
	return c.SetAttr(base, accs)
}

// LoadStructure reads every node's parent/partition/children back out
// of the root file's /Taxonomy/Nodes group.
func LoadStructure(c *container.Container) (map[uint32]*Node, error) {
	ids, err := c.ChildNames(schema.GroupTaxNodes)
	if err != nil {
		return nil, err
	}
	nodes := make(map[uint32]*Node, len(ids))
	for _, idStr := range ids {
		id64, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			continue
		}
		id := uint32(id64)
		base := schema.TaxonNodePath(id)
		n := &Node{ID: id}

		if v, ok, _ := c.GetAttr(base + "/" + attrParent); ok {
			n.ParentID, _ = v.(uint32)
		}
		if v, ok, _ := c.GetAttr(base + "/" + attrPartition); ok {
			n.Partition, _ = v.(int)
		}
		if v, ok, _ := c.GetAttr(base + "/" + attrChildren); ok {
			n.ChildrenIDs, _ = v.([]uint32)
		}
		nodes[id] = n
	}
	return nodes, nil
}

// LoadNames reads /Taxonomy/Names and attaches each entry's names to
// the matching node in nodes.
func LoadNames(c *container.Container, nodes map[uint32]*Node) error {
	if !c.HasDataset(schema.DatasetTaxNames) {
		return nil
	}
	data, err := c.GetDataset(schema.DatasetTaxNames)
	if err != nil {
		return err
	}
	var raw map[string][][2]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for idStr, pairs := range raw {
		id64, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			continue
		}
		n, ok := nodes[uint32(id64)]
		if !ok {
			continue
		}
		for _, p := range pairs {
			n.Names = append(n.Names, Name{Kind: NameKind(p[0]), Text: p[1]})
		}
	}
	return nil
}

// LoadFamilyAccessions reads the family_accessions attribute for
// every node owned by partition out of c (a leaf or root file) and
// merges it into nodes.
func LoadFamilyAccessions(c *container.Container, nodes map[uint32]*Node, partition int) error {
	for id, n := range nodes {
		if n.Partition != partition {
			continue
		}
		base := schema.TaxonNodePath(id)
		if v, ok, _ := c.GetAttr(base + "/" + attrFamilies); ok {
			accs, _ := v.([]string)
			n.FamilyAccessions = accs
		}
	}
	return nil
}
