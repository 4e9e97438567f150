package cmd

import (
	"fmt"
	"io"

	"fedspeak/internal/envelope"
	"fedspeak/internal/models"
	"fedspeak/internal/truncate"
)

// writeResponse prints the envelope, truncated first when budget is positive.
func writeResponse(w io.Writer, resp models.Response, budget int) error {
	if budget > 0 {
		out, _, err := truncate.New(budget).Truncate(resp)
		if err != nil {
			return err
		}
		resp = out
	}
	return writeJSON(w, resp)
}

func writeJSON(w io.Writer, v any) error {
	data, err := envelope.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
