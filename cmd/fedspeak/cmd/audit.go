package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fedspeak/internal/dictionary"
)

func newAuditCmd(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report data problems in the dictionary",
		Long: `Report duplicate keys, aliases that shadow another acronym, repeated full
names, unknown categories and other problems. The dictionary is not modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := opts.open()
			if err != nil {
				return err
			}

			issues := dictionary.Audit(records)
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %d issues\n", len(records), len(issues))

			if strict && len(issues) > 0 {
				return fmt.Errorf("audit found %d issues", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any issue is found")
	return cmd
}
