package appendcmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/render"
)

// writeFixture writes the EMBL rendering of f to a temp file and
// returns its path.
func writeFixture(t *testing.T, f *family.Family, ctx render.Context) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.embl")
	if err := os.WriteFile(path, render.EMBL(f, ctx), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseEMBLFileRoundTrip(t *testing.T) {
	name := "MIR"
	desc := "Mammalian-wide interspersed repeat."
	consensus := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	original := &family.Family{
		Accession:      "DF000000001",
		Version:        3,
		Name:           &name,
		Description:    &desc,
		Classification: "root; Interspersed_Repeat; SINE; MIR",
		Consensus:      &consensus,
		Length:         len(consensus),
		Citations: []family.Citation{
			{Author: "Smit AFA", Title: "Repeat families", Journal: "Repbase", Year: 2005},
		},
		RepeatMasker: &family.RMAnnotations{Type: "SINE", SubType: "MIR", SearchStages: []int{40, 60}},
	}

	path := writeFixture(t, original, render.Context{DisplayClade: "Mammalia"})

	families, err := parseEMBLFile(path)
	if err != nil {
		t.Fatalf("parseEMBLFile: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("got %d families, want 1", len(families))
	}

	got := families[0].Family
	if got.Accession != "DF000000001" {
		t.Errorf("Accession = %q, want DF000000001", got.Accession)
	}
	if got.Version != 3 {
		t.Errorf("Version = %d, want 3", got.Version)
	}
	if got.DisplayName() != "MIR" {
		t.Errorf("Name = %q, want MIR", got.DisplayName())
	}
	// EMBL sequence blocks are lower-cased on render (standard EMBL
	// convention), so compare case-insensitively.
	if got.Consensus == nil || !strings.EqualFold(*got.Consensus, consensus) {
		t.Errorf("Consensus = %v, want %q (case-insensitive)", got.Consensus, consensus)
	}
	if got.RepeatMasker == nil || got.RepeatMasker.Type != "SINE" || got.RepeatMasker.SubType != "MIR" {
		t.Fatalf("RepeatMasker = %+v, want Type=SINE SubType=MIR", got.RepeatMasker)
	}
	if len(got.RepeatMasker.SearchStages) != 2 || got.RepeatMasker.SearchStages[0] != 40 {
		t.Errorf("SearchStages = %v, want [40 60]", got.RepeatMasker.SearchStages)
	}
	if len(got.Citations) != 1 || got.Citations[0].Year != 2005 {
		t.Errorf("Citations = %+v, want one 2005 citation", got.Citations)
	}
	if got.Classification != original.Classification {
		t.Errorf("Classification = %q, want %q", got.Classification, original.Classification)
	}
}

func TestLoadExclusionList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exclude.txt")
	if err := os.WriteFile(path, []byte("DF000000001\n# a comment\n\nDF000000002\n"), 0o644); err != nil {
		t.Fatalf("write exclusion list: %v", err)
	}

	excluded, err := loadExclusionList(path)
	if err != nil {
		t.Fatalf("loadExclusionList: %v", err)
	}
	if !excluded["DF000000001"] || !excluded["DF000000002"] {
		t.Errorf("excluded = %v, want both accessions", excluded)
	}
	if len(excluded) != 2 {
		t.Errorf("len(excluded) = %d, want 2", len(excluded))
	}
}
