package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fedspeak/internal/models"
)

func newListCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every acronym in the dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, _, err := opts.open()
			if err != nil {
				return err
			}

			keys := dict.Keys()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), models.AcronymListResponse{Count: len(keys), Acronyms: keys})
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print {count, acronyms} as JSON")
	return cmd
}

func newCountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of acronyms in the dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, _, err := opts.open()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dict.Count())
			return nil
		},
	}
}
