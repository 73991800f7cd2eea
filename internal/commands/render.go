// Package commands implements the CLI command handlers.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
)

// printJSON writes indented JSON to w.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
