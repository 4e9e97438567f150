package cmd

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fedspeak/internal/models"
)

func newDecodeCmd(opts *options) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "decode [acronym]",
		Short: "Resolve an acronym, or scan --text for acronyms",
		Example: `  fedspeak decode GSA
  fedspeak decode --text "The DOW and GSA are working with OMB"
  cat memo.txt | fedspeak decode --text -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.DecodeRequest
			if len(args) == 1 {
				req.Acronym = args[0]
			}
			t, err := readText(cmd, text)
			if err != nil {
				return err
			}
			req.Text = t
			if req.Query().Kind == models.QueryEmpty {
				return errors.New(`provide an acronym or --text`)
			}

			builder, err := opts.builder()
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), builder.Decode(req), opts.budget)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", `text to scan ("-" reads stdin)`)
	return cmd
}

func newEncodeCmd(opts *options) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "encode [name]",
		Short: "Resolve a full name to its acronym, or scan --text for full names",
		Example: `  fedspeak encode "General Services Administration"
  fedspeak encode --text "Bids go to the Office of Management and Budget"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.EncodeRequest
			if len(args) == 1 {
				req.Name = args[0]
			}
			t, err := readText(cmd, text)
			if err != nil {
				return err
			}
			req.Text = t
			if req.Query().Kind == models.QueryEmpty {
				return errors.New(`provide a name or --text`)
			}

			builder, err := opts.builder()
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), builder.Encode(req), opts.budget)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", `text to scan ("-" reads stdin)`)
	return cmd
}

// readText returns the flag value, or stdin when the value is "-".
func readText(cmd *cobra.Command, text string) (string, error) {
	if text != "-" {
		return text, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
