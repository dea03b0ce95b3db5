package render

import (
	"strings"
	"testing"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

func sampleFamily() *family.Family {
	name := "MIR"
	consensus := "ACGTACGTACGTNNNNACGTACGTACGT"
	return &family.Family{
		Accession:      "DF000000001",
		Version:        3,
		Name:           &name,
		Classification: "root;Interspersed_Repeat;SINE;MIR",
		Consensus:      &consensus,
		Length:         len(consensus),
		RepeatMasker: &family.RMAnnotations{
			Type: "SINE", SubType: "MIR", SearchStages: []int{40, 60, 65},
		},
	}
}

func TestSummary(t *testing.T) {
	f := sampleFamily()
	out := string(Summary(f))
	want := "DF000000001.3 'MIR': root;Interspersed_Repeat;SINE;MIR len=28\n"
	if out != want {
		t.Errorf("Summary = %q, want %q", out, want)
	}
}

func TestFastaName(t *testing.T) {
	f := sampleFamily()
	out, err := FastaName(f, Context{DisplayClade: "Mammalia"})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.HasPrefix(s, ">MIR @Mammalia [S:40,60,65]\n") {
		t.Errorf("FastaName header wrong: %q", s)
	}
}

func TestFastaAccWithRC(t *testing.T) {
	f := sampleFamily()
	out, err := FastaAcc(f, Context{DisplayClade: "Hominidae", IncludeClassInName: true, ReverseComplement: true})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, ">DF000000001.3#SINE/MIR name=MIR @Hominidae [S:40,60,65]") {
		t.Errorf("FastaAcc header missing expected form: %q", s)
	}
	if !strings.Contains(s, "_RC#SINE/MIR name=MIR @Hominidae") {
		t.Errorf("FastaAcc RC record missing: %q", s)
	}
}

// hmmFamilyWithStaleTH returns a family whose stored HMM payload
// already contains a TH line (as if it were produced by an earlier,
// buggy export) alongside a fresh per-species threshold, exercising
// the "strip any pre-existing TH lines" guarantee of HMM/HMMSpecies.
func hmmFamilyWithStaleTH() *family.Family {
	f := sampleFamily()
	f.HMM = []byte("HMMER3/f [3.1 | July 2016]\n" +
		"NAME  stale\n" +
		"ACC   DF000000000.0\n" +
		"DESC  stale description\n" +
		"GA    20.0 20.0;\n" +
		"TC    21.0 21.0;\n" +
		"NC    19.0 19.0;\n" +
		"TH    TaxId:1; TaxName:stale; GA:20.0; TC:21.0; NC:19.0; fdr:0.010;\n" +
		"//\n")
	f.TH = []family.Threshold{
		{TaxonID: 9606, TaxonName: "Homo sapiens", GA: 28.4, TC: 30.1, NC: 26.0, FDR: 0.01},
	}
	return f
}

func TestHMMStripsStaleTHLines(t *testing.T) {
	f := hmmFamilyWithStaleTH()
	out, err := HMM(f, Context{})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if strings.Contains(s, "stale") {
		t.Errorf("HMM output retained the stale TH line: %q", s)
	}
	if n := strings.Count(s, "TH    "); n != 1 {
		t.Errorf("HMM output has %d TH lines, want exactly 1 (one per f.TH entry): %q", n, s)
	}
	if !strings.Contains(s, "TaxId:9606") {
		t.Errorf("HMM output missing the freshly generated TH line: %q", s)
	}
}

func TestHMMSpeciesStripsAllTHLines(t *testing.T) {
	f := hmmFamilyWithStaleTH()
	nodes := map[uint32]*taxonomy.Node{
		1:    {ID: 1, ParentID: 1, ChildrenIDs: []uint32{9606}},
		9606: {ID: 9606, ParentID: 1},
	}
	tree := taxonomy.Build(nodes)
	species := uint32(9606)

	out, err := HMMSpecies(f, Context{Tree: tree, SpeciesID: &species})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if strings.Contains(s, "TH    ") {
		t.Errorf("HMMSpecies output has a TH line, want none: %q", s)
	}
	if !strings.Contains(s, "GA    28.4 28.4;") {
		t.Errorf("HMMSpecies output missing promoted GA threshold: %q", s)
	}
}

func TestRenderDispatch(t *testing.T) {
	f := sampleFamily()
	if _, err := Render("bogus", f, Context{}); err == nil {
		t.Error("expected error for unknown format")
	}
	out, err := Render(FormatSummary, f, Context{})
	if err != nil || len(out) == 0 {
		t.Errorf("Render(summary) = %v, %v", out, err)
	}
}
