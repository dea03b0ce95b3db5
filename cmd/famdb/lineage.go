package main

import (
	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/query"
)

var lineageCmd = &cobra.Command{
	Use:   "lineage <term...>",
	Short: "Print a taxon's lineage tree",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer fs.Close()

		opt := query.LineageOptions{}
		opt.WithAncestors, _ = cmd.Flags().GetBool("ancestors")
		opt.WithDescendants, _ = cmd.Flags().GetBool("descendants")
		opt.IncludeEmpty, _ = cmd.Flags().GetBool("complete")
		opt.Curated, _ = cmd.Flags().GetBool("curated")
		opt.Uncurated, _ = cmd.Flags().GetBool("uncurated")
		opt.Format, _ = cmd.Flags().GetString("format")

		var out []byte
		for _, term := range args {
			rendered, err := eng.Lineage(term, opt)
			if err != nil {
				return err
			}
			out = append(out, []byte(rendered)...)
		}
		return writeOut(cmd, out)
	},
}

func init() {
	lineageCmd.Flags().BoolP("ancestors", "a", false, "include ancestor nodes")
	lineageCmd.Flags().BoolP("descendants", "d", false, "include descendant nodes")
	lineageCmd.Flags().BoolP("complete", "k", false, "include nodes with zero family counts")
	lineageCmd.Flags().BoolP("curated", "c", false, "count curated (DF) families only")
	lineageCmd.Flags().BoolP("uncurated", "u", false, "count uncurated (DR) families only")
	lineageCmd.Flags().StringP("format", "f", query.LineageFormatPretty, "output format: pretty, semicolon, totals")
	RootCmd.AddCommand(lineageCmd)
}
