package render

import (
	"fmt"

	"github.com/Dfam-consortium/famdb-go/internal/family"
)

// Summary renders spec.md §4.7's one-line summary:
// "<ACC>.<VER> '<NAME>': <classification> len=<N>".
func Summary(f *family.Family) []byte {
	name := f.DisplayName()
	return []byte(fmt.Sprintf("%s.%d '%s': %s len=%d\n", f.Accession, f.Version, name, f.Classification, f.Length))
}
