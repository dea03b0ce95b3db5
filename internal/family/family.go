// Package family implements the FamDB family object model (spec.md
// §3 "Family") and its encode/decode codec against internal/container
// via internal/schema's layout.
package family

import "time"

// Threshold is a per-species HMM threshold record ("TH line").
type Threshold struct {
	TaxonID   uint32
	TaxonName string
	GA        float64
	TC        float64
	NC        float64
	FDR       float64
}

// BufferStage is one {stage, start, end} RepeatMasker buffer-stage
// annotation.
type BufferStage struct {
	Stage int
	Start int
	End   int
}

// RMAnnotations holds the RepeatMasker-specific annotations.
type RMAnnotations struct {
	Type         string
	SubType      string
	SearchStages []int
	BufferStages []BufferStage
}

// Citation is one bibliographic reference attached to a family.
type Citation struct {
	Author string
	Title  string
	Journal string
	Year   int
}

// Family is the in-memory record for one TE/repeat family, per
// spec.md §3. Optional fields are pointers/nil-slices so "absent" is
// distinguishable from a present-but-empty value, per spec.md §4.3.
type Family struct {
	Accession      string // e.g. "DF000000001"
	Version        int
	Name           *string
	AlternateNames []string
	Description    *string
	Classification string // semicolon-delimited, begins with "root"
	Clades         []uint32

	Consensus *string // nucleotide string, may be absent
	HMM       []byte  // opaque HMM payload, may be absent

	GA *float64
	TC *float64
	NC *float64
	TH []Threshold

	Citations       []Citation
	Author          *string
	Copyright       *string
	DateCreated     *time.Time
	DateModified    *time.Time
	Length          int
	RepeatMasker    *RMAnnotations
	TargetSiteCons  *string
	Refineable      bool

	// Extra preserves attributes this codec version doesn't know
	// about, round-tripped verbatim (spec.md §4.3 "unknown attributes
	// are preserved on round-trip").
	Extra map[string]interface{}
}

// Curated reports whether the accession's prefix marks it curated
// (DF) versus uncurated (DR), per spec.md §3/§8.
func (f *Family) Curated() bool {
	return Curated(f.Accession)
}

// Curated is the accession-only form of Family.Curated, used by
// callers that only have the accession string (e.g. lookup indices).
func Curated(accession string) bool {
	return len(accession) >= 2 && accession[:2] == "DF"
}

// DisplayName returns Name if set, else the empty string — callers
// needing a fallback display name should consult the taxonomy layer
// for the queried clade's name instead.
func (f *Family) DisplayName() string {
	if f.Name != nil {
		return *f.Name
	}
	return ""
}

// HasGeneralThreshold reports whether GA/TC/NC are all present, the
// condition `families --require-general-threshold` filters on.
func (f *Family) HasGeneralThreshold() bool {
	return f.GA != nil && f.TC != nil && f.NC != nil
}

// SearchStages returns the union of RepeatMasker search stages and
// buffer stage numbers, the set `families --stage N` matches against.
func (f *Family) SearchStages() []int {
	if f.RepeatMasker == nil {
		return nil
	}
	seen := make(map[int]bool, len(f.RepeatMasker.SearchStages)+len(f.RepeatMasker.BufferStages))
	var stages []int
	add := func(s int) {
		if !seen[s] {
			seen[s] = true
			stages = append(stages, s)
		}
	}
	for _, s := range f.RepeatMasker.SearchStages {
		add(s)
	}
	for _, b := range f.RepeatMasker.BufferStages {
		add(b.Stage)
	}
	return stages
}
