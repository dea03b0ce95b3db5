package family

import (
	"path/filepath"
	"testing"

	"github.com/Dfam-consortium/famdb-go/internal/container"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.0.h5")

	name := "MIR"
	desc := "Mammalian-wide interspersed repeat"
	consensus := "acgtACGTacgtNNNN"
	ga := 9.8

	f := &Family{
		Accession:      "DF000000001",
		Version:        2,
		Name:           &name,
		AlternateNames: []string{"MIRb", "MIRc"},
		Description:    &desc,
		Classification: "root;Interspersed_Repeat;Transposable_Element;SINE;MIR",
		Clades:         []uint32{40674, 9606},
		Consensus:      &consensus,
		HMM:            []byte("HMMER3/f [test]\n"),
		GA:             &ga,
		TH: []Threshold{
			{TaxonID: 9606, TaxonName: "Homo sapiens", GA: 9.8, TC: 10.1, NC: 9.5, FDR: 0.01},
		},
		RepeatMasker: &RMAnnotations{
			Type: "SINE", SubType: "MIR",
			SearchStages: []int{40, 60, 65},
		},
		Length: len(consensus),
	}

	w, err := container.CreateWrite(path)
	if err != nil {
		t.Fatalf("CreateWrite: %v", err)
	}
	if err := Encode(w, f); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := container.OpenRead(path)
	if err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	defer r.Close()

	got, err := Decode(r, "DF000000001")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.DisplayName() != "MIR" {
		t.Errorf("name = %q, want MIR", got.DisplayName())
	}
	if got.Consensus == nil || *got.Consensus != "ACGTACGTACGTNNNN" {
		t.Errorf("consensus = %v, want upper-cased round trip", got.Consensus)
	}
	if got.Version != 2 {
		t.Errorf("version = %d, want 2", got.Version)
	}
	if len(got.Clades) != 2 || got.Clades[0] != 40674 || got.Clades[1] != 9606 {
		t.Errorf("clades = %v", got.Clades)
	}
	if len(got.TH) != 1 || got.TH[0].TaxonID != 9606 {
		t.Errorf("TH = %+v", got.TH)
	}
	if got.RepeatMasker == nil || got.RepeatMasker.Type != "SINE" {
		t.Errorf("RepeatMasker = %+v", got.RepeatMasker)
	}
	if !got.Curated() {
		t.Errorf("DF accession should be curated")
	}
}

func TestEncodeDecodeExtraRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.0.h5")

	f := &Family{
		Accession:      "DF000000003",
		Version:        1,
		Classification: "root",
		Extra: map[string]interface{}{
			"curation_notes": "reviewed by hand, not yet published",
		},
	}

	w, err := container.CreateWrite(path)
	if err != nil {
		t.Fatalf("CreateWrite: %v", err)
	}
	if err := Encode(w, f); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := container.OpenRead(path)
	if err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	defer r.Close()

	got, err := Decode(r, "DF000000003")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if v, ok := got.Extra["curation_notes"]; !ok || v != "reviewed by hand, not yet published" {
		t.Errorf("Extra[curation_notes] = %v, ok=%v, want preserved unknown attribute", v, ok)
	}
	if len(got.Extra) != 1 {
		t.Errorf("Extra = %v, want exactly the one unknown attribute", got.Extra)
	}
}

func TestParseAccession(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
		curated bool
		version int
	}{
		{"DF000000001", false, true, 0},
		{"DF000000001.3", false, true, 3},
		{"dr000000002", false, false, 0},
		{"XX000000001", true, false, 0},
		{"DFabc", true, false, 0},
	}
	for _, c := range cases {
		got, err := ParseAccession(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseAccession(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAccession(%q): unexpected error %v", c.in, err)
			continue
		}
		if got.Curated != c.curated || got.Version != c.version {
			t.Errorf("ParseAccession(%q) = %+v, want curated=%v version=%d", c.in, got, c.curated, c.version)
		}
	}
}
