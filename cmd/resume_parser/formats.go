package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/extraction"
)

var formatDescriptions = map[extraction.Format]string{
	extraction.FormatPDF:   "PDF text layer plus URI link annotations",
	extraction.FormatDOCX:  "Office Open XML word document plus hyperlink targets",
	extraction.FormatText:  "UTF-8 plain text",
	extraction.FormatLaTeX: "LaTeX source, markup stripped",
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported input formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, f := range extraction.SupportedFormats() {
				_, _ = fmt.Fprintf(out, ".%-5s %s\n", f, formatDescriptions[f])
			}
			_, _ = fmt.Fprintf(out, ".%-5s not supported; convert to .docx\n", "doc")
			return nil
		},
	}
}
