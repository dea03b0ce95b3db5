package family

import (
	"strconv"
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/famerr"
)

// ParsedAccession is the result of splitting "DF000000001.3" into its
// prefix, digit body and optional version suffix, per spec.md §4.3
// ("version suffix .N is optional and stored separately").
type ParsedAccession struct {
	Base    string // "DF000000001", without version suffix
	Version int    // 0 if unversioned
	Curated bool
}

// ParseAccession validates and splits an accession string, matching
// it case-insensitively against the DF/DR prefix rule.
func ParseAccession(acc string) (ParsedAccession, error) {
	base := acc
	version := 0

	if i := strings.LastIndexByte(acc, '.'); i >= 0 {
		if v, err := strconv.Atoi(acc[i+1:]); err == nil {
			base = acc[:i]
			version = v
		}
	}

	if len(base) < 3 {
		return ParsedAccession{}, famerr.User("malformed accession").WithTerm(acc)
	}
	prefix := strings.ToUpper(base[:2])
	if prefix != "DF" && prefix != "DR" {
		return ParsedAccession{}, famerr.User("accession must start with DF or DR").WithTerm(acc)
	}
	digits := base[2:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ParsedAccession{}, famerr.User("accession prefix must be followed by digits").WithTerm(acc)
		}
	}

	return ParsedAccession{
		Base:    prefix + digits,
		Version: version,
		Curated: prefix == "DF",
	}, nil
}
