package family

import (
	"encoding/json"
	"time"

	"github.com/Dfam-consortium/famdb-go/internal/container"
	"github.com/Dfam-consortium/famdb-go/internal/schema"
)

// attribute keys under a family's group, relative to its accession group.
const (
	attrVersion        = "version"
	attrName           = "name"
	attrAltNames       = "alternate_names"
	attrDescription    = "description"
	attrClassification = "classification"
	attrClades         = "clades"
	attrGA             = "ga"
	attrTC             = "tc"
	attrNC             = "nc"
	attrThresholdsJSON = "th_json"
	attrCitationsJSON  = "citations_json"
	attrAuthor         = "author"
	attrCopyright      = "copyright"
	attrDateCreated    = "date_created"
	attrDateModified   = "date_modified"
	attrLength         = "length"
	attrRMAnnotJSON    = "rm_annotations_json"
	attrTargetSiteCons = "target_site_cons"
	attrRefineable     = "refineable"

	datasetConsensus = "consensus"
	datasetHMM       = "hmm"
)

// knownAttrs lists every attribute key Encode writes, so Decode can
// tell a "known but absent" field apart from an "unknown, preserve
// verbatim" one when filling Extra.
var knownAttrs = map[string]bool{
	attrVersion: true, attrName: true, attrAltNames: true,
	attrDescription: true, attrClassification: true, attrClades: true,
	attrGA: true, attrTC: true, attrNC: true,
	attrThresholdsJSON: true, attrCitationsJSON: true,
	attrAuthor: true, attrCopyright: true,
	attrDateCreated: true, attrDateModified: true, attrLength: true,
	attrRMAnnotJSON: true, attrTargetSiteCons: true, attrRefineable: true,
}

// Encode writes f into c under its schema-assigned group path.
func Encode(c *container.Container, f *Family) error {
	base := schema.FamilyGroupPath(f.Accession)
	set := func(name string, v interface{}) error {
		return c.SetAttr(base+"/"+name, v)
	}

	if err := set(attrVersion, f.Version); err != nil {
		return err
	}
	if f.Name != nil {
		if err := set(attrName, *f.Name); err != nil {
			return err
		}
	}
	if len(f.AlternateNames) > 0 {
		if err := set(attrAltNames, f.AlternateNames); err != nil {
			return err
		}
	}
	if f.Description != nil {
		if err := set(attrDescription, *f.Description); err != nil {
			return err
		}
	}
	if err := set(attrClassification, f.Classification); err != nil {
		return err
	}
	if len(f.Clades) > 0 {
		clades := make([]int64, len(f.Clades))
		for i, c := range f.Clades {
			clades[i] = int64(c)
		}
		if err := set(attrClades, clades); err != nil {
			return err
		}
	}
	if f.GA != nil {
		if err := set(attrGA, *f.GA); err != nil {
			return err
		}
	}
	if f.TC != nil {
		if err := set(attrTC, *f.TC); err != nil {
			return err
		}
	}
	if f.NC != nil {
		if err := set(attrNC, *f.NC); err != nil {
			return err
		}
	}
	if len(f.TH) > 0 {
		blob, err := json.Marshal(f.TH)
		if err != nil {
			return err
		}
		if err := set(attrThresholdsJSON, string(blob)); err != nil {
			return err
		}
	}
	if len(f.Citations) > 0 {
		blob, err := json.Marshal(f.Citations)
		if err != nil {
			return err
		}
		if err := set(attrCitationsJSON, string(blob)); err != nil {
			return err
		}
	}
	if f.Author != nil {
		if err := set(attrAuthor, *f.Author); err != nil {
			return err
		}
	}
	if f.Copyright != nil {
		if err := set(attrCopyright, *f.Copyright); err != nil {
			return err
		}
	}
	if f.DateCreated != nil {
		if err := set(attrDateCreated, f.DateCreated.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if f.DateModified != nil {
		if err := set(attrDateModified, f.DateModified.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if err := set(attrLength, f.Length); err != nil {
		return err
	}
	if f.RepeatMasker != nil {
		blob, err := json.Marshal(f.RepeatMasker)
		if err != nil {
			return err
		}
		if err := set(attrRMAnnotJSON, string(blob)); err != nil {
			return err
		}
	}
	if f.TargetSiteCons != nil {
		if err := set(attrTargetSiteCons, *f.TargetSiteCons); err != nil {
			return err
		}
	}
	if err := set(attrRefineable, f.Refineable); err != nil {
		return err
	}

	for k, v := range f.Extra {
		if knownAttrs[k] {
			continue
		}
		if err := set(k, v); err != nil {
			return err
		}
	}

	if f.Consensus != nil {
		if err := c.WriteDataset(base+"/"+datasetConsensus, []byte(NormalizeSequence(*f.Consensus)), true); err != nil {
			return err
		}
	}
	if len(f.HMM) > 0 {
		if err := c.WriteDataset(base+"/"+datasetHMM, f.HMM, true); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads the family at accession's group path out of c into an
// owned Family value. Unknown attributes survive round-trip in Extra.
func Decode(c *container.Container, accession string) (*Family, error) {
	base := schema.FamilyGroupPath(accession)
	f := &Family{Accession: accession, Extra: map[string]interface{}{}}

	get := func(name string) (interface{}, bool) {
		v, ok, _ := c.GetAttr(base + "/" + name)
		return v, ok
	}

	if v, ok := get(attrVersion); ok {
		f.Version, _ = v.(int)
	}
	if v, ok := get(attrName); ok {
		s, _ := v.(string)
		f.Name = &s
	}
	if v, ok := get(attrAltNames); ok {
		f.AlternateNames, _ = v.([]string)
	}
	if v, ok := get(attrDescription); ok {
		s, _ := v.(string)
		f.Description = &s
	}
	if v, ok := get(attrClassification); ok {
		f.Classification, _ = v.(string)
	}
	if v, ok := get(attrClades); ok {
		if clades, ok := v.([]int64); ok {
			f.Clades = make([]uint32, len(clades))
			for i, c := range clades {
				f.Clades[i] = uint32(c)
			}
		}
	}
	if v, ok := get(attrGA); ok {
		x, _ := v.(float64)
		f.GA = &x
	}
	if v, ok := get(attrTC); ok {
		x, _ := v.(float64)
		f.TC = &x
	}
	if v, ok := get(attrNC); ok {
		x, _ := v.(float64)
		f.NC = &x
	}
	if v, ok := get(attrThresholdsJSON); ok {
		if s, ok := v.(string); ok {
			_ = json.Unmarshal([]byte(s), &f.TH)
		}
	}
	if v, ok := get(attrCitationsJSON); ok {
		if s, ok := v.(string); ok {
			_ = json.Unmarshal([]byte(s), &f.Citations)
		}
	}
	if v, ok := get(attrAuthor); ok {
		s, _ := v.(string)
		f.Author = &s
	}
	if v, ok := get(attrCopyright); ok {
		s, _ := v.(string)
		f.Copyright = &s
	}
	if v, ok := get(attrDateCreated); ok {
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				f.DateCreated = &t
			}
		}
	}
	if v, ok := get(attrDateModified); ok {
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				f.DateModified = &t
			}
		}
	}
	if v, ok := get(attrLength); ok {
		f.Length, _ = v.(int)
	}
	if v, ok := get(attrRMAnnotJSON); ok {
		if s, ok := v.(string); ok {
			var rm RMAnnotations
			if err := json.Unmarshal([]byte(s), &rm); err == nil {
				f.RepeatMasker = &rm
			}
		}
	}
	if v, ok := get(attrTargetSiteCons); ok {
		s, _ := v.(string)
		f.TargetSiteCons = &s
	}
	if v, ok := get(attrRefineable); ok {
		f.Refineable, _ = v.(bool)
	}

	if c.HasDataset(base + "/" + datasetConsensus) {
		data, err := c.GetDataset(base + "/" + datasetConsensus)
		if err != nil {
			return nil, err
		}
		s := string(data)
		f.Consensus = &s
		if f.Length == 0 {
			f.Length = len(s)
		}
	}
	if c.HasDataset(base + "/" + datasetHMM) {
		data, err := c.GetDataset(base + "/" + datasetHMM)
		if err != nil {
			return nil, err
		}
		f.HMM = data
	}

	if names, err := c.AttrNames(base); err == nil {
		for _, name := range names {
			if knownAttrs[name] {
				continue
			}
			if v, ok := get(name); ok {
				f.Extra[name] = v
			}
		}
	}

	return f, nil
}
