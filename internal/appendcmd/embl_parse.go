package appendcmd

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"

	"github.com/Dfam-consortium/famdb-go/internal/family"
)

// parsedFamily pairs a parsed family.Family with the OC line's
// organism lineage, which append.go uses to resolve the owning clade.
// The OC lineage names a species, not a repeat classification, so it
// never touches f.Classification (populated instead from the record's
// own "CC   Classification:" line, see parseCCLine).
type parsedFamily struct {
	Family          *family.Family
	OrganismLineage string
}

// parseEMBLFile reads infile.embl (one or more records terminated by a
// bare "//" line) via breader's chunked line reader — the same tool
// and chunking parameters taxonomy's NCBI dump loaders use — and
// builds one parsedFamily per record. The inverse of internal/render's
// EMBL emitter: ID/NM/AC/DE/OC/RN-RA-RT-RL/CC/SQ are read back here;
// the DR, KW and OS lines it writes are ignored.
func parseEMBLFile(path string) ([]*parsedFamily, error) {
	parseFunc := func(line string) (interface{}, bool, error) {
		return line, true, nil
	}
	reader, err := breader.NewBufferedReader(path, 8, 100, parseFunc)
	if err != nil {
		return nil, errors.Wrap(err, "appendcmd: reading EMBL file")
	}

	var families []*parsedFamily
	var record []string
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, errors.Wrap(chunk.Err, "appendcmd: parsing EMBL file")
		}
		for _, d := range chunk.Data {
			line := d.(string)
			if strings.TrimSpace(line) == "//" {
				if len(record) > 0 {
					pf, err := parseEMBLRecord(record)
					if err != nil {
						return nil, err
					}
					families = append(families, pf)
					record = nil
				}
				continue
			}
			record = append(record, line)
		}
	}
	if len(record) > 0 {
		pf, err := parseEMBLRecord(record)
		if err != nil {
			return nil, err
		}
		families = append(families, pf)
	}
	return families, nil
}

// parseEMBLRecord builds one parsedFamily from the lines between two
// "//" delimiters, dispatching on each line's two-letter tag.
func parseEMBLRecord(lines []string) (*parsedFamily, error) {
	f := &family.Family{Extra: map[string]interface{}{}}

	var descLines, ocLines []string
	var seqLines []string
	inSeq := false
	var rm *family.RMAnnotations
	var curCitation *family.Citation

	for _, line := range lines {
		if inSeq {
			seqLines = append(seqLines, line)
			continue
		}
		if strings.HasPrefix(line, "SQ   ") {
			inSeq = true
			continue
		}
		if len(line) < 2 {
			continue
		}
		tag := strings.TrimSpace(line[:2])
		rest := strings.TrimSpace(line[2:])

		switch tag {
		case "ID":
			if err := parseIDLine(f, rest); err != nil {
				return nil, err
			}
		case "NM":
			name := rest
			f.Name = &name
		case "AC":
			f.Accession = strings.TrimSuffix(strings.TrimSpace(rest), ";")
		case "DE":
			descLines = append(descLines, rest)
		case "OC":
			ocLines = append(ocLines, strings.TrimSuffix(rest, "."))
		case "RN":
			if curCitation != nil {
				f.Citations = append(f.Citations, *curCitation)
			}
			curCitation = &family.Citation{}
		case "RA":
			if curCitation != nil {
				curCitation.Author = strings.TrimSuffix(rest, ";")
			}
		case "RT":
			if curCitation != nil {
				curCitation.Title = strings.Trim(strings.TrimSuffix(rest, ";"), `"`)
			}
		case "RL":
			if curCitation != nil {
				journal, year := splitJournalYear(rest)
				curCitation.Journal = journal
				curCitation.Year = year
			}
		case "CC":
			rm = parseCCLine(f, rm, rest)
		}
	}
	if curCitation != nil {
		f.Citations = append(f.Citations, *curCitation)
	}
	if len(descLines) > 0 {
		desc := strings.Join(descLines, " ")
		f.Description = &desc
	}
	var lineage string
	if len(ocLines) > 0 {
		lineage = strings.Join(ocLines, " ")
	}
	f.RepeatMasker = rm

	if len(seqLines) > 0 {
		seq := joinSequenceLines(seqLines)
		f.Consensus = &seq
		f.Length = len(seq)
	}

	return &parsedFamily{Family: f, OrganismLineage: lineage}, nil
}

// parseIDLine parses "<ACC>; SV <N>; linear; ... <LEN> BP." into f's
// accession/version (length is recomputed from the sequence block).
func parseIDLine(f *family.Family, rest string) error {
	parts := strings.Split(rest, ";")
	if len(parts) < 2 {
		return errors.Errorf("malformed ID line: %q", rest)
	}
	f.Accession = strings.TrimSpace(parts[0])
	svField := strings.TrimSpace(parts[1])
	svField = strings.TrimPrefix(svField, "SV")
	if v, err := strconv.Atoi(strings.TrimSpace(svField)); err == nil {
		f.Version = v
	}
	return nil
}

// splitJournalYear parses "<journal>, <year>." from an RL line.
func splitJournalYear(rest string) (string, int) {
	rest = strings.TrimSuffix(rest, ".")
	i := strings.LastIndex(rest, ",")
	if i < 0 {
		return rest, 0
	}
	year, err := strconv.Atoi(strings.TrimSpace(rest[i+1:]))
	if err != nil {
		return rest, 0
	}
	return strings.TrimSpace(rest[:i]), year
}

// parseCCLine folds one "CC" line into f's classification or the
// RepeatMasker annotation sub-block, mirroring emblMetaBody's
// "CC   Classification: ..." / "CC        Type: ..." / "SubType: ..." /
// "SearchStages: ..." layout. Any other CC line (including the
// description text, which is taken from DE instead) is ignored.
func parseCCLine(f *family.Family, rm *family.RMAnnotations, rest string) *family.RMAnnotations {
	switch {
	case rest == "-":
		return rm
	case strings.HasPrefix(rest, "Classification:"):
		f.Classification = strings.TrimSpace(strings.TrimPrefix(rest, "Classification:"))
		return rm
	case rest == "RepeatMasker Annotations:":
		if rm == nil {
			rm = &family.RMAnnotations{}
		}
		return rm
	case strings.HasPrefix(rest, "Type:"):
		if rm == nil {
			rm = &family.RMAnnotations{}
		}
		rm.Type = strings.TrimSpace(strings.TrimPrefix(rest, "Type:"))
		return rm
	case strings.HasPrefix(rest, "SubType:"):
		if rm == nil {
			rm = &family.RMAnnotations{}
		}
		rm.SubType = strings.TrimSpace(strings.TrimPrefix(rest, "SubType:"))
		return rm
	case strings.HasPrefix(rest, "SearchStages:"):
		if rm == nil {
			rm = &family.RMAnnotations{}
		}
		for _, s := range strings.Split(strings.TrimSpace(strings.TrimPrefix(rest, "SearchStages:")), ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				rm.SearchStages = append(rm.SearchStages, n)
			}
		}
		return rm
	default:
		return rm
	}
}

// joinSequenceLines reassembles "     acgtac gtacgt ... N" lines back
// into one bare sequence string.
func joinSequenceLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// Trailing field is the running position counter; every field
		// before it is a 10-nt group.
		for _, grp := range fields[:len(fields)-1] {
			b.WriteString(grp)
		}
	}
	return b.String()
}
