// Package appendcmd implements the minimal EMBL-ingest bridge behind
// the `append` subcommand (spec.md §6): enough to exercise the write
// half of the container/schema/family layers without reimplementing
// the separately specified SQL/EMBL/HMM builder tool.
package appendcmd

import (
	"strings"

	"github.com/shenwei356/breader"
)

// loadExclusionList reads a one-accession-per-line file into a set,
// using the same chunked-reader shape as taxonomy's NCBI dump loaders.
func loadExclusionList(path string) (map[string]bool, error) {
	parseFunc := func(line string) (interface{}, bool, error) {
		acc := strings.TrimSpace(line)
		if acc == "" || strings.HasPrefix(acc, "#") {
			return nil, false, nil
		}
		return acc, true, nil
	}

	reader, err := breader.NewBufferedReader(path, 8, 100, parseFunc)
	if err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		for _, d := range chunk.Data {
			out[d.(string)] = true
		}
	}
	return out, nil
}
