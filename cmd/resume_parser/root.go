package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	debug      bool
	jsonLogs   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "resume_parser",
		Short: "Resume text extraction",
		Long: `resume_parser converts resume documents (PDF, DOCX, plain text, LaTeX) into a single
normalized text block with a synthesized contact header and any hyperlinks that were
only present in the document structure.

Configuration can be loaded from a JSON file using --config. Environment variables
override the file, and command-line flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log at debug level")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "Emit JSON log lines")

	cmd.AddCommand(newExtractCmd(opts))
	cmd.AddCommand(newFormatsCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}

// loadConfig resolves the effective configuration: config file, then defaults,
// then environment, then the root flags that were explicitly set
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if o.configPath != "" {
		loadedCfg, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Step 3: Environment overrides
	cfg.ApplyEnv()

	// Step 4: Apply CLI overrides (only flags that were explicitly set)
	if cmd.Flags().Changed("debug") {
		cfg.Debug = o.debug
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = o.jsonLogs
	}

	return cfg, nil
}
