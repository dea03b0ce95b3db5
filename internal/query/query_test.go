package query

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/fileset"
	"github.com/Dfam-consortium/famdb-go/internal/render"
	"github.com/Dfam-consortium/famdb-go/internal/schema"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

// buildTestSet writes a single-partition famdb directory to t.TempDir():
//
//	1 (root)
//	└─ 2 (Mammalia)
//	   ├─ 9606 (Homo sapiens)  -- DF000000001
//	   └─ 10090 (Mus musculus)
//
// and returns its opened FileSet.
func buildTestSet(t *testing.T) *fileset.FileSet {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.0.h5")

	nodes := map[uint32]*taxonomy.Node{
		1: {ID: 1, ParentID: 1, ChildrenIDs: []uint32{2},
			Names: []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "root"}}},
		2: {ID: 2, ParentID: 1, ChildrenIDs: []uint32{9606, 10090},
			Names: []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "Mammalia"}}},
		9606: {ID: 9606, ParentID: 2,
			Names:            []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "Homo sapiens"}, {Kind: taxonomy.KindCommon, Text: "human"}},
			FamilyAccessions: []string{"DF000000001"}},
		10090: {ID: 10090, ParentID: 2,
			Names: []taxonomy.Name{{Kind: taxonomy.KindScientific, Text: "Mus musculus"}}},
	}
	tree := taxonomy.Build(nodes)

	c, guard, err := schema.OpenForWrite(path, true, "test-build")
	if err != nil {
		t.Fatalf("OpenForWrite: %v", err)
	}

	id := schema.Identity{
		ExportName:          "test",
		ExportDate:          "2026-01-01",
		SchemaVersionMajor:  schema.SchemaVersionMajor,
		SchemaVersionMinor:  schema.SchemaVersionMinor,
		PartitionNumber:     0,
		PartitionRootTaxonID: 1,
		FullPartitionTable:  []int{0},
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
	if err := taxonomy.PersistFamilyAccessions(c, tree, 0); err != nil {
		t.Fatalf("PersistFamilyAccessions: %v", err)
	}

	name := "SVA"
	ga := 28.4
	tc := 30.1
	nc := 26.0
	consensus := "ACGTACGTACGTACGTACGT"
	fam := &family.Family{
		Accession:      "DF000000001",
		Version:        3,
		Name:           &name,
		Classification: "root;Interspersed_Repeat;Transposable_Element;LTR;ERVL",
		Clades:         []uint32{9606},
		GA:             &ga,
		TC:             &tc,
		NC:             &nc,
		Consensus:      &consensus,
	}
	if err := family.Encode(c, fam); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := guard.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	fs, err := fileset.Open(dir)
	if err != nil {
		t.Fatalf("fileset.Open: %v", err)
	}
	t.Cleanup(func() { fs.Close() })
	return fs
}

func TestEngineNames(t *testing.T) {
	e := New(buildTestSet(t))

	res := e.Names("Homo sapiens")
	if len(res.Exact) != 1 || res.Exact[0].ID != 9606 {
		t.Fatalf("Names(Homo sapiens).Exact = %+v, want one entry for 9606", res.Exact)
	}

	res = e.Names("nonexistent")
	if !(len(res.Exact) == 0 && len(res.NonExact) == 0) {
		t.Fatalf("Names(nonexistent) should return no matches, got %+v", res)
	}
}

func TestEngineInfo(t *testing.T) {
	e := New(buildTestSet(t))

	info, err := e.Info(false)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.ExportName != "test" {
		t.Errorf("ExportName = %q, want test", info.ExportName)
	}
	if len(info.Partitions) != 1 || !info.Partitions[0].Installed {
		t.Fatalf("Partitions = %+v, want one installed partition", info.Partitions)
	}
	if info.Partitions[0].FamilyCount != 1 {
		t.Errorf("FamilyCount = %d, want 1", info.Partitions[0].FamilyCount)
	}
}

func TestEngineLineage(t *testing.T) {
	e := New(buildTestSet(t))

	out, err := e.Lineage("9606", LineageOptions{WithAncestors: true, Format: LineageFormatPretty})
	if err != nil {
		t.Fatalf("Lineage: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("Homo sapiens")) {
		t.Errorf("pretty lineage missing Homo sapiens:\n%s", out)
	}

	out, err = e.Lineage("9606", LineageOptions{Format: LineageFormatTotals})
	if err != nil {
		t.Fatalf("Lineage totals: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("lineage-specific entries")) {
		t.Errorf("totals output malformed: %q", out)
	}
}

func TestEngineFamilies(t *testing.T) {
	e := New(buildTestSet(t))

	var buf bytes.Buffer
	warnings, err := e.Families("9606", FamiliesOptions{Format: render.FormatFastaAcc}, &buf)
	if err != nil {
		t.Fatalf("Families: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if !bytes.Contains(buf.Bytes(), []byte("DF000000001")) {
		t.Errorf("families output missing accession:\n%s", buf.String())
	}

	buf.Reset()
	_, err = e.Families("9606", FamiliesOptions{RequireGeneralThreshold: true, NamePrefix: "nonexistent"}, &buf)
	if err != nil {
		t.Fatalf("Families (filtered): %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("name-prefix filter should have excluded every family, got %q", buf.String())
	}
}

func TestEngineFamily(t *testing.T) {
	e := New(buildTestSet(t))

	out, err := e.Family("df000000001.3", FamilyOptions{Format: render.FormatSummary})
	if err != nil {
		t.Fatalf("Family: %v", err)
	}
	if !bytes.Contains(out, []byte("DF000000001")) {
		t.Errorf("summary missing accession:\n%s", out)
	}
}
