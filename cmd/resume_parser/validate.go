package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate extracted document JSON against the extraction-result schema",
		Long: `Validate JSON documents written by "extract --output json" or the .meta.json files
written by "extract --out" against the embedded extraction-result schema.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	failed := 0
	for _, path := range args {
		if err := schemas.ValidateDocumentFile(path); err != nil {
			failed++
			_, _ = fmt.Fprintf(errOut, "✗ %s\n%v\n", path, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}
