package appendcmd

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/fileset"
	"github.com/Dfam-consortium/famdb-go/internal/schema"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

// buildInitialStore writes a bare, family-less partition-0 file in a
// fresh temp directory and returns the directory.
func buildInitialStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.0.h5")

	nodes := map[uint32]*taxonomy.Node{
		1: {ID: 1, ParentID: 1, ChildrenIDs: []uint32{2},
			Names: []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "root"}}},
		2: {ID: 2, ParentID: 1, ChildrenIDs: []uint32{9606},
			Names: []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "Mammalia"}}},
		9606: {ID: 9606, ParentID: 2,
			Names: []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "Homo sapiens"}}},
	}
	tree := taxonomy.Build(nodes)

	c, guard, err := schema.OpenForWrite(path, true, "test-build")
	if err != nil {
		t.Fatalf("OpenForWrite: %v", err)
	}
	id := schema.Identity{
		ExportName:           "test",
		ExportDate:           "2026-01-01",
		SchemaVersionMajor:   schema.SchemaVersionMajor,
		SchemaVersionMinor:   schema.SchemaVersionMinor,
		PartitionNumber:      0,
		PartitionRootTaxonID: 1,
		FullPartitionTable:   []int{0},
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
	if err := guard.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return dir
}

func TestAppend(t *testing.T) {
	dir := buildInitialStore(t)

	consensus := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	name := "MIR"
	fam := &family.Family{
		Accession:      "DF000000099",
		Version:        1,
		Name:           &name,
		Classification: "root;Interspersed_Repeat;SINE/MIR",
		Consensus:      &consensus,
		Length:         len(consensus),
	}
	organismLineage := "root; Mammalia; Homo sapiens"
	embl := renderMinimalEMBL(fam, organismLineage)

	infile := filepath.Join(t.TempDir(), "in.embl")
	if err := os.WriteFile(infile, []byte(embl), 0o644); err != nil {
		t.Fatalf("write infile: %v", err)
	}

	if err := Append(dir, Options{Infile: infile}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	fs, err := fileset.Open(dir)
	if err != nil {
		t.Fatalf("fileset.Open: %v", err)
	}
	defer fs.Close()

	got, err := fs.GetFamily("DF000000099")
	if err != nil {
		t.Fatalf("GetFamily(DF000000099): %v", err)
	}
	if got.DisplayName() != "MIR" {
		t.Errorf("DisplayName = %q, want MIR", got.DisplayName())
	}
	if got.Classification != fam.Classification {
		t.Errorf("Classification = %q, want %q (must not be overwritten by the OC organism lineage)", got.Classification, fam.Classification)
	}

	accs, warn := fs.FamiliesForTaxon(9606)
	if warn != nil {
		t.Fatalf("FamiliesForTaxon(9606) warning: %v", warn)
	}
	if len(accs) != 1 || accs[0] != "DF000000099" {
		t.Errorf("FamiliesForTaxon(9606) = %v, want [DF000000099]", accs)
	}
}

// renderMinimalEMBL hand-writes a bare-bones EMBL record sufficient
// for parseEMBLFile, independent of internal/render (keeps this test
// from depending on render's exact formatting choices). organismLineage
// becomes the OC line (species ownership, used only for clade
// resolution); f.Classification becomes the CC Classification: line
// (the repeat family's own type path) — the two must never collide.
func renderMinimalEMBL(f *family.Family, organismLineage string) string {
	s := "ID   " + f.Accession + "; SV 1; linear; unassigned DNA; STD; UNC; 0 BP.\n"
	s += "NM   " + f.DisplayName() + "\n"
	s += "AC   " + f.Accession + ";\n"
	s += "OC   " + organismLineage + ".\n"
	s += "CC   Classification: " + f.Classification + "\n"
	s += "SQ   Sequence 0 BP;\n"
	seq := *f.Consensus
	s += "     " + seq + " " + strconv.Itoa(len(seq)) + "\n"
	s += "//\n"
	return s
}
