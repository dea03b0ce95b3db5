package main

import (
	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/query"
)

var familyCmd = &cobra.Command{
	Use:   "family <acc>",
	Short: "Print a single family record by accession",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer fs.Close()

		opt := query.FamilyOptions{}
		opt.Format, _ = cmd.Flags().GetString("format")
		opt.ReverseComplement, _ = cmd.Flags().GetBool("add-reverse-complement")
		opt.IncludeClassInName, _ = cmd.Flags().GetBool("include-class-in-name")

		out, err := eng.Family(args[0], opt)
		if err != nil {
			return err
		}
		return writeOut(cmd, out)
	},
}

func init() {
	familyCmd.Flags().StringP("format", "f", "summary",
		"output format: summary, hmm, hmm_species, fasta_name, fasta_acc, embl, embl_meta, embl_seq")
	familyCmd.Flags().Bool("add-reverse-complement", false, "also emit a reverse-complemented copy where applicable")
	familyCmd.Flags().Bool("include-class-in-name", false, "insert #Type/SubType into FASTA headers")
	RootCmd.AddCommand(familyCmd)
}
