package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/famerr"
	"github.com/Dfam-consortium/famdb-go/internal/query"
)

var namesCmd = &cobra.Command{
	Use:   "names <term...>",
	Short: "Look up taxon names, printing exact and partial matches",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer fs.Close()

		format, _ := cmd.Flags().GetString("format")

		var out []byte
		for _, term := range args {
			res := eng.Names(term)
			rendered, err := renderNames(term, res, format)
			if err != nil {
				return err
			}
			out = append(out, rendered...)
		}
		return writeOut(cmd, out)
	},
}

func renderNames(term string, res query.NamesResult, format string) ([]byte, error) {
	switch format {
	case "", "pretty":
		return renderNamesPretty(term, res), nil
	case "json":
		return renderNamesJSON(res)
	default:
		return nil, famerr.User("unknown names format").WithTerm(format)
	}
}

func renderNamesPretty(term string, res query.NamesResult) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Exact matches for %q:\n", term)
	for _, e := range res.Exact {
		writeNameEntry(&b, e)
	}
	fmt.Fprintf(&b, "Non-exact matches for %q:\n", term)
	for _, e := range res.NonExact {
		writeNameEntry(&b, e)
	}
	if len(res.Exact) == 0 && len(res.NonExact) == 0 {
		fmt.Fprintf(&b, "  no matches")
		if len(res.Suggestions) > 0 {
			b.WriteString("; did you mean:\n")
			for _, s := range res.Suggestions {
				fmt.Fprintf(&b, "    %d %s\n", s.ID, s.Name)
			}
		} else {
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

func writeNameEntry(b *strings.Builder, e query.NameEntry) {
	names := make([]string, len(e.Names))
	for i, n := range e.Names {
		names[i] = n.Text
	}
	fmt.Fprintf(b, "  %d %s\n", e.ID, strings.Join(names, ", "))
}

type jsonNameEntry struct {
	ID    uint32     `json:"id"`
	Names []jsonName `json:"names"`
}

type jsonName struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func renderNamesJSON(res query.NamesResult) ([]byte, error) {
	toJSON := func(entries []query.NameEntry) []jsonNameEntry {
		out := make([]jsonNameEntry, len(entries))
		for i, e := range entries {
			names := make([]jsonName, len(e.Names))
			for j, n := range e.Names {
				names[j] = jsonName{Kind: string(n.Kind), Text: n.Text}
			}
			out[i] = jsonNameEntry{ID: e.ID, Names: names}
		}
		return out
	}
	all := append(toJSON(res.Exact), toJSON(res.NonExact)...)
	out, err := json.Marshal(all)
	if err != nil {
		return nil, famerr.IO(err, "marshal names result")
	}
	return append(out, '\n'), nil
}

func init() {
	namesCmd.Flags().StringP("format", "f", "pretty", "output format: pretty, json")
	RootCmd.AddCommand(namesCmd)
}
