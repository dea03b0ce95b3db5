package fileset

import (
	"path/filepath"
	"testing"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/schema"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

// buildTwoPartitionSet writes a root (partition 0) file owning taxon 1
// and a leaf (partition 1) file owning taxon 9606, each with one
// family, and returns the directory.
func buildTwoPartitionSet(t *testing.T, installLeaf bool) string {
	t.Helper()
	dir := t.TempDir()

	nodes := map[uint32]*taxonomy.Node{
		1: {ID: 1, ParentID: 1, ChildrenIDs: []uint32{9606}, Partition: 0,
			Names:            []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "root"}},
			FamilyAccessions: []string{"DF000000001"}},
		9606: {ID: 9606, ParentID: 1, Partition: 1,
			Names:            []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "Homo sapiens"}},
			FamilyAccessions: []string{"DF000000002"}},
	}
	tree := taxonomy.Build(nodes)

	writePartition := func(path string, partNum int, fam *family.Family, ownerTaxon uint32) {
		c, guard, err := schema.OpenForWrite(path, true, "test-build")
		if err != nil {
			t.Fatalf("OpenForWrite(%s): %v", path, err)
		}
		id := schema.Identity{
			ExportName:           "test",
			ExportDate:           "2026-01-01",
			SchemaVersionMajor:   schema.SchemaVersionMajor,
			SchemaVersionMinor:   schema.SchemaVersionMinor,
			PartitionNumber:      partNum,
			PartitionRootTaxonID: ownerTaxon,
			FullPartitionTable:   []int{0, 1},
		}
		if err := schema.WriteIdentity(c, id); err != nil {
			t.Fatalf("WriteIdentity: %v", err)
		}
		if err := taxonomy.PersistStructure(c, tree); err != nil {
			t.Fatalf("PersistStructure: %v", err)
		}
		if err := taxonomy.PersistNames(c, tree); err != nil {
			t.Fatalf("PersistNames: %v", err)
		}
		if err := taxonomy.PersistFamilyAccessions(c, tree, partNum); err != nil {
			t.Fatalf("PersistFamilyAccessions: %v", err)
		}
		if fam != nil {
			if err := family.Encode(c, fam); err != nil {
				t.Fatalf("Encode: %v", err)
			}
		}
		if err := guard.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}

	consensus := "ACGTACGTACGTACGTACGTACGTACGTACGT"
	rootName := "RootRepeat"
	writePartition(filepath.Join(dir, "test.0.h5"), 0,
		&family.Family{Accession: "DF000000001", Version: 1, Name: &rootName,
			Classification: "root", Consensus: &consensus, Length: len(consensus)}, 1)

	if installLeaf {
		leafName := "HumanRepeat"
		writePartition(filepath.Join(dir, "test.1.h5"), 1,
			&family.Family{Accession: "DF000000002", Version: 1, Name: &leafName,
				Classification: "root; Homo sapiens", Consensus: &consensus, Length: len(consensus)}, 9606)
	}

	return dir
}

func TestOpenBothPartitions(t *testing.T) {
	dir := buildTwoPartitionSet(t, true)
	fs, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer fs.Close()

	if len(fs.Missing()) != 0 {
		t.Errorf("Missing() = %v, want none", fs.Missing())
	}
	if got := fs.Partitions(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Partitions() = %v, want [0 1]", got)
	}

	f, err := fs.GetFamily("DF000000002")
	if err != nil {
		t.Fatalf("GetFamily(DF000000002): %v", err)
	}
	if f.DisplayName() != "HumanRepeat" {
		t.Errorf("DisplayName = %q, want HumanRepeat", f.DisplayName())
	}

	accs, warn := fs.FamiliesForTaxon(9606)
	if warn != nil {
		t.Fatalf("FamiliesForTaxon(9606) warning: %v", warn)
	}
	if len(accs) != 1 || accs[0] != "DF000000002" {
		t.Errorf("FamiliesForTaxon(9606) = %v, want [DF000000002]", accs)
	}

	union, warnings := fs.FamiliesForTaxa([]uint32{1, 9606})
	if len(warnings) != 0 {
		t.Fatalf("FamiliesForTaxa warnings: %v", warnings)
	}
	if len(union) != 2 {
		t.Errorf("FamiliesForTaxa([1,9606]) = %v, want 2 accessions", union)
	}
}

func TestOpenMissingLeafPartition(t *testing.T) {
	dir := buildTwoPartitionSet(t, false)
	fs, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer fs.Close()

	if missing := fs.Missing(); len(missing) != 1 || missing[0] != 1 {
		t.Errorf("Missing() = %v, want [1]", missing)
	}

	_, warn := fs.FamiliesForTaxon(9606)
	if warn == nil {
		t.Fatal("FamiliesForTaxon(9606) on an uninstalled partition: want a warning, got nil")
	}
}

func TestOpenEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir); err == nil {
		t.Fatal("Open(empty dir): want error, got nil")
	}
}
