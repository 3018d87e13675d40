package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dukerupert/sabzi/internal/seed"
)

func newParseCmd() *cobra.Command {
	var withRule bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse list lines and print the records as JSON",
		Long:  "Reads Name-qty-note lines from file, or stdin when no file is given, and prints how each line splits.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runParse(in, cmd.OutOrStdout(), withRule)
		},
	}
	cmd.Flags().BoolVar(&withRule, "rule", true, "include the name of the matching rule")
	return cmd
}

func runParse(in io.Reader, out io.Writer, withRule bool) error {
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	records := seed.ParseLines(string(text))
	if records == nil {
		records = []seed.Record{}
	}
	if !withRule {
		for i := range records {
			records[i].Rule = ""
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
