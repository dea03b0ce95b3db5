package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/famlog"
	"github.com/Dfam-consortium/famdb-go/internal/query"
)

var familiesCmd = &cobra.Command{
	Use:   "families <term...>",
	Short: "Print every family owned by a taxon (and optionally its lineage)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer fs.Close()

		opt := query.FamiliesOptions{}
		opt.WithAncestors, _ = cmd.Flags().GetBool("ancestors")
		opt.WithDescendants, _ = cmd.Flags().GetBool("descendants")
		opt.ClassPrefix, _ = cmd.Flags().GetString("class")
		opt.NamePrefix, _ = cmd.Flags().GetString("name")
		opt.Curated, _ = cmd.Flags().GetBool("curated")
		opt.Uncurated, _ = cmd.Flags().GetBool("uncurated")
		opt.RequireGeneralThreshold, _ = cmd.Flags().GetBool("require-general-threshold")
		opt.Format, _ = cmd.Flags().GetString("format")
		opt.ReverseComplement, _ = cmd.Flags().GetBool("add-reverse-complement")
		opt.IncludeClassInName, _ = cmd.Flags().GetBool("include-class-in-name")

		if stage, err := cmd.Flags().GetInt("stage"); err == nil && cmd.Flags().Changed("stage") {
			opt.Stage = &stage
		}

		var buf bytes.Buffer
		for _, term := range args {
			warnings, err := eng.Families(term, opt, &buf)
			for _, w := range warnings {
				famlog.Log.Warning(w.Error())
			}
			if err != nil {
				return err
			}
		}
		return writeOut(cmd, buf.Bytes())
	},
}

func init() {
	familiesCmd.Flags().BoolP("ancestors", "a", false, "include ancestor taxa's families")
	familiesCmd.Flags().BoolP("descendants", "d", false, "include descendant taxa's families")
	familiesCmd.Flags().Int("stage", 0, "restrict to families active in this RepeatMasker search stage")
	familiesCmd.Flags().String("class", "", "restrict to classification paths with this component prefix")
	familiesCmd.Flags().String("name", "", "restrict to families whose name has this prefix")
	familiesCmd.Flags().BoolP("curated", "c", false, "restrict to curated (DF) families")
	familiesCmd.Flags().BoolP("uncurated", "u", false, "restrict to uncurated (DR) families")
	familiesCmd.Flags().Bool("require-general-threshold", false, "restrict to families with a general GA/TC/NC threshold")
	familiesCmd.Flags().StringP("format", "f", "summary",
		"output format: summary, hmm, hmm_species, fasta_name, fasta_acc, embl, embl_meta, embl_seq")
	familiesCmd.Flags().Bool("add-reverse-complement", false, "also emit a reverse-complemented copy where applicable")
	familiesCmd.Flags().Bool("include-class-in-name", false, "insert #Type/SubType into FASTA headers")
	RootCmd.AddCommand(familiesCmd)
}
