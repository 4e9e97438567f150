package cmd

import (
	"github.com/spf13/cobra"

	"fedspeak/internal/dictionary"
	"fedspeak/internal/envelope"
	"fedspeak/internal/resolver"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	dictionary string
	budget     int
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "fedspeak",
		Short:        "Decode U.S. federal government acronyms",
		Long:         "Resolve acronyms to full names and back, or scan a passage of text for both.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dictionary, "dictionary", "", "JSON dictionary file (default: built-in)")
	rootCmd.PersistentFlags().IntVar(&opts.budget, "budget", 0, "truncate responses to this many characters (0: no limit)")

	rootCmd.AddCommand(newDecodeCmd(opts))
	rootCmd.AddCommand(newEncodeCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newCountCmd(opts))
	rootCmd.AddCommand(newAuditCmd(opts))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) open() (*dictionary.Dictionary, []dictionary.Record, error) {
	return dictionary.Open(o.dictionary)
}

func (o *options) builder() (*envelope.Builder, error) {
	dict, _, err := o.open()
	if err != nil {
		return nil, err
	}
	return envelope.NewBuilder(resolver.NewDecoder(dict), resolver.NewEncoder(dict)), nil
}
