// Package fileset implements the file-set coordinator (spec.md §4.5):
// directory discovery, shared-identity validation, root/leaf routing,
// and the per-partition read operations the query engine composes
// into cross-file results.
package fileset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/Dfam-consortium/famdb-go/internal/cliutil"
	"github.com/Dfam-consortium/famdb-go/internal/container"
	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
	"github.com/Dfam-consortium/famdb-go/internal/famlog"
	"github.com/Dfam-consortium/famdb-go/internal/schema"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

// partitionFilePattern matches "<export>.<N>.h5", the naming scheme
// spec.md §4.5 enumerates a directory for.
var partitionFilePattern = regexp.MustCompile(`\.([0-9]+)\.h5$`)

// partitionFile is one open file belonging to the set.
type partitionFile struct {
	path      string
	container *container.Container
	identity  schema.Identity
}

// FileSet is an opened, validated FamDB directory: a root (partition
// 0) file plus zero or more installed leaf partitions, and the merged
// taxonomy tree built across all of them.
type FileSet struct {
	dir        string
	root       *partitionFile
	partitions map[int]*partitionFile // installed partitions, by number
	declared   []int                  // full_partition_table from identity
	tree       *taxonomy.Tree
}

// Missing reports which declared partitions have no installed file,
// per spec.md §4.5's "missing leaves are allowed" rule.
func (fs *FileSet) Missing() []int {
	var out []int
	for _, p := range fs.declared {
		if _, ok := fs.partitions[p]; !ok {
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}

// Tree returns the merged taxonomy index.
func (fs *FileSet) Tree() *taxonomy.Tree { return fs.tree }

// Partitions returns the installed partition numbers, sorted.
func (fs *FileSet) Partitions() []int {
	out := make([]int, 0, len(fs.partitions))
	for p := range fs.partitions {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Identity returns the root file's identity (export name/date, schema
// version, full partition table).
func (fs *FileSet) Identity() schema.Identity { return fs.root.identity }

// Open discovers, opens and validates every *.<N>.h5 file in dir,
// merges their taxonomy views into one tree, and returns a ready
// FileSet. dir may use a leading "~", expanded via cliutil.
func Open(dir string) (*FileSet, error) {
	expanded, err := cliutil.ExpandDir(dir)
	if err != nil {
		return nil, famerr.User("cannot open famdb directory: %s", err)
	}

	entries, err := os.ReadDir(expanded)
	if err != nil {
		return nil, famerr.IO(err, "read directory %s", expanded)
	}

	type discovered struct {
		path      string
		partition int
	}
	var found []discovered
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := partitionFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		found = append(found, discovered{path: filepath.Join(expanded, e.Name()), partition: n})
	}
	if len(found) == 0 {
		return nil, famerr.User("no famdb files (*.<N>.h5) found in %s", expanded)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].partition < found[j].partition })

	partitions := make(map[int]*partitionFile, len(found))
	var root *partitionFile
	var firstIdentity schema.Identity
	haveIdentity := false

	for _, d := range found {
		c, id, err := schema.OpenForRead(d.path)
		if err != nil {
			for _, p := range partitions {
				p.container.Close()
			}
			return nil, err
		}
		if !haveIdentity {
			firstIdentity = id
			haveIdentity = true
		} else if !firstIdentity.Matches(id) {
			c.Close()
			for _, p := range partitions {
				p.container.Close()
			}
			return nil, famerr.Data("mixed export in %s: %s does not match the rest of the file set", expanded, d.path)
		}

		pf := &partitionFile{path: d.path, container: c, identity: id}
		if id.PartitionNumber != d.partition {
			famlog.Log.Warningf("%s: filename declares partition %d but file identity says %d", d.path, d.partition, id.PartitionNumber)
		}
		if _, dup := partitions[id.PartitionNumber]; dup {
			c.Close()
			for _, p := range partitions {
				p.container.Close()
			}
			return nil, famerr.Data("duplicate partition %d in %s", id.PartitionNumber, expanded)
		}
		partitions[id.PartitionNumber] = pf
		if id.PartitionNumber == 0 {
			root = pf
		}
	}
	if root == nil {
		for _, p := range partitions {
			p.container.Close()
		}
		return nil, famerr.Data("no partition-0 (root) file found in %s", expanded)
	}

	nodes, err := taxonomy.LoadStructure(root.container)
	if err != nil {
		closeAll(partitions)
		return nil, famerr.IO(err, "load taxonomy structure from %s", root.path)
	}
	if err := taxonomy.LoadNames(root.container, nodes); err != nil {
		closeAll(partitions)
		return nil, famerr.IO(err, "load taxonomy names from %s", root.path)
	}
	for partNum, pf := range partitions {
		if err := taxonomy.LoadFamilyAccessions(pf.container, nodes, partNum); err != nil {
			closeAll(partitions)
			return nil, famerr.IO(err, "load family accessions from %s", pf.path)
		}
	}

	tree := taxonomy.Build(nodes)

	return &FileSet{
		dir:        expanded,
		root:       root,
		partitions: partitions,
		declared:   firstIdentity.FullPartitionTable,
		tree:       tree,
	}, nil
}

func closeAll(partitions map[int]*partitionFile) {
	for _, p := range partitions {
		p.container.Close()
	}
}

// Close releases every open file in the set.
func (fs *FileSet) Close() error {
	var firstErr error
	for _, p := range fs.partitions {
		if err := p.container.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GetFamily routes acc to its owning partition (via the taxon that
// lists it in FamilyAccessions, falling back to a linear partition
// scan if the owning taxon can't be found) and decodes it.
func (fs *FileSet) GetFamily(acc string) (*family.Family, error) {
	partNum, ok := fs.partitionOf(acc)
	if ok {
		pf, installed := fs.partitions[partNum]
		if !installed {
			return nil, famerr.Data("family %s lives in partition %d, file not installed", acc, partNum).WithTerm(acc)
		}
		return family.Decode(pf.container, acc)
	}
	for _, p := range fs.Partitions() {
		pf := fs.partitions[p]
		if !pf.container.HasGroup(schema.FamilyGroupPath(acc)) {
			continue
		}
		f, err := family.Decode(pf.container, acc)
		if err == nil {
			return f, nil
		}
	}
	return nil, famerr.User("unknown accession").WithTerm(acc)
}

func (fs *FileSet) partitionOf(acc string) (int, bool) {
	for _, n := range fs.tree.AllNodes() {
		for _, a := range n.FamilyAccessions {
			if a == acc {
				return n.Partition, true
			}
		}
	}
	return 0, false
}

// FamiliesForTaxon returns the accessions owned by taxon id, per
// spec.md §4.5's per-taxon lookup. It returns a non-fatal
// famerr.KindWarning error when id's owning partition isn't installed.
func (fs *FileSet) FamiliesForTaxon(id uint32) ([]string, *famerr.Error) {
	n := fs.tree.Node(id)
	if n == nil {
		return nil, nil
	}
	if _, installed := fs.partitions[n.Partition]; !installed {
		w := famerr.Data("data lives in partition %d, file not installed", n.Partition).WithTerm(fmt.Sprintf("taxon %d", id))
		w.Kind = famerr.KindWarning
		return nil, w
	}
	return n.FamilyAccessions, nil
}

// FamiliesForTaxa unions FamiliesForTaxon over ids, iterating one
// partition at a time to preserve file locality (spec.md §4.5), and
// returns any per-partition warnings collected along the way.
func (fs *FileSet) FamiliesForTaxa(ids []uint32) ([]string, []*famerr.Error) {
	byPartition := map[int][]uint32{}
	for _, id := range ids {
		n := fs.tree.Node(id)
		if n == nil {
			continue
		}
		byPartition[n.Partition] = append(byPartition[n.Partition], id)
	}

	parts := make([]int, 0, len(byPartition))
	for p := range byPartition {
		parts = append(parts, p)
	}
	sort.Ints(parts)

	var accs []string
	var warnings []*famerr.Error
	seen := map[string]bool{}
	for _, p := range parts {
		if _, installed := fs.partitions[p]; !installed {
			w := famerr.Data("data lives in partition %d, file not installed", p)
			w.Kind = famerr.KindWarning
			warnings = append(warnings, w)
			continue
		}
		for _, id := range byPartition[p] {
			n := fs.tree.Node(id)
			for _, a := range n.FamilyAccessions {
				if !seen[a] {
					seen[a] = true
					accs = append(accs, a)
				}
			}
		}
	}
	sort.Strings(accs)
	return accs, warnings
}

// Container returns the open container for an installed partition
// number, or nil if that partition isn't installed.
func (fs *FileSet) Container(partition int) *container.Container {
	pf, ok := fs.partitions[partition]
	if !ok {
		return nil
	}
	return pf.container
}

// RootContainer returns the partition-0 file's open container.
func (fs *FileSet) RootContainer() *container.Container { return fs.root.container }

// PartitionIdentity returns the installed file's own identity
// attributes for partition n (its declared root taxon id in
// particular), or false if n isn't installed.
func (fs *FileSet) PartitionIdentity(n int) (schema.Identity, bool) {
	pf, ok := fs.partitions[n]
	if !ok {
		return schema.Identity{}, false
	}
	return pf.identity, true
}
