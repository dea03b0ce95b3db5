package taxonomy

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
)

// LoadNodesDump parses an NCBI-format nodes.dmp file (tab-pipe-
// delimited: taxid | parent taxid | rank | ...) into a fresh node
// arena, one entry per taxid. Grounded on the teacher's
// NewTaxonomyFromNCBI chunked-reader pattern, generalized from a bare
// parent-id map to full Node values carrying parent/children edges.
func LoadNodesDump(path string) (map[uint32]*Node, error) {
	type rec struct {
		Taxid  uint32
		Parent uint32
	}

	parseFunc := func(line string) (interface{}, bool, error) {
		items := strings.Split(line, "\t|\t")
		if len(items) < 2 {
			return nil, false, nil
		}
		taxid, err := strconv.ParseUint(strings.TrimSpace(items[0]), 10, 32)
		if err != nil {
			return nil, false, err
		}
		parent, err := strconv.ParseUint(strings.TrimSpace(items[1]), 10, 32)
		if err != nil {
			return nil, false, err
		}
		return rec{Taxid: uint32(taxid), Parent: uint32(parent)}, true, nil
	}

	reader, err := breader.NewBufferedReader(path, 8, 100, parseFunc)
	if err != nil {
		return nil, errors.Wrap(err, "taxonomy: reading nodes.dmp")
	}

	nodes := make(map[uint32]*Node, 1<<16)
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, errors.Wrap(chunk.Err, "taxonomy: parsing nodes.dmp")
		}
		for _, d := range chunk.Data {
			r := d.(rec)
			n := nodeFor(nodes, r.Taxid)
			n.ParentID = r.Parent
			if r.Parent != r.Taxid {
				p := nodeFor(nodes, r.Parent)
				p.ChildrenIDs = append(p.ChildrenIDs, r.Taxid)
			}
		}
	}
	return nodes, nil
}

// LoadNamesDump parses an NCBI-format names.dmp file (taxid | name |
// unique name | name class |) and attaches each entry to the
// matching node in nodes, creating a bare node if nodes.dmp hadn't
// already populated one (defensive against out-of-order dump files).
func LoadNamesDump(path string, nodes map[uint32]*Node) error {
	type rec struct {
		Taxid uint32
		Kind  NameKind
		Text  string
	}

	parseFunc := func(line string) (interface{}, bool, error) {
		items := strings.Split(line, "\t|\t")
		if len(items) < 4 {
			return nil, false, nil
		}
		taxid, err := strconv.ParseUint(strings.TrimSpace(items[0]), 10, 32)
		if err != nil {
			return nil, false, err
		}
		class := strings.TrimSpace(strings.TrimSuffix(items[3], "\t|"))
		return rec{
			Taxid: uint32(taxid),
			Kind:  ncbiNameKind(class),
			Text:  strings.TrimSpace(items[1]),
		}, true, nil
	}

	reader, err := breader.NewBufferedReader(path, 8, 100, parseFunc)
	if err != nil {
		return errors.Wrap(err, "taxonomy: reading names.dmp")
	}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return errors.Wrap(chunk.Err, "taxonomy: parsing names.dmp")
		}
		for _, d := range chunk.Data {
			r := d.(rec)
			n := nodeFor(nodes, r.Taxid)
			n.Names = append(n.Names, Name{Kind: r.Kind, Text: r.Text})
		}
	}
	return nil
}

func nodeFor(nodes map[uint32]*Node, id uint32) *Node {
	n, ok := nodes[id]
	if !ok {
		n = &Node{ID: id}
		nodes[id] = n
	}
	return n
}

func ncbiNameKind(class string) NameKind {
	switch class {
	case "scientific name":
		return KindScientific
	case "common name":
		return KindCommon
	case "genbank common name":
		return KindGenBankCommon
	case "synonym":
		return KindSynonym
	case "authority":
		return KindAuthority
	case "includes":
		return KindIncludes
	case "equivalent name":
		return KindEquivalent
	default:
		return KindSynonym
	}
}
