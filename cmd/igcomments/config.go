package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"igcomments/pkg/auth"
	"igcomments/pkg/config"
	"igcomments/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage igcomments configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (IGCOMMENTS_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is written to '.igcomments.yaml' in the current directory unless a
different path is given with --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(configPath())
	},
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging every source. The access token
is masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(configFile, cmd.OutOrStdout())
	},
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load every configuration source and report all invalid values at once.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigValidate(configFile)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func configPath() string {
	if configFile != "" {
		return configFile
	}
	return ".igcomments.yaml"
}

const exampleConfig = `# igcomments configuration file
#
# Every option can also be set with an IGCOMMENTS_* environment variable,
# for example IGCOMMENTS_ACCESS_TOKEN or IGCOMMENTS_LIMIT.

graph:
  # Graph API host and version
  base_url: "https://graph.facebook.com"
  api_version: "v17.0"

  # Access token. Prefer 'igcomments auth login' or IGCOMMENTS_ACCESS_TOKEN
  # over keeping it in this file.
  access_token: ""

  # Per-request timeout, e.g. "30s". 0 waits indefinitely.
  timeout: 0s

comments:
  # Number of recent media items to read comments from
  limit: 25

output:
  # Output format: text, json
  format: "text"

  # Colored diagnostics on stderr
  color: true

logging:
  # Log level: debug, info, warn, error
  level: "warn"

  # Log file path (optional). Leave empty to log to stderr.
  file: ""
`

func runConfigInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	// 0600: the file may end up holding an access token
	if err := os.WriteFile(path, []byte(exampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + path)
	return nil
}

func runConfigShow(path string, w io.Writer) error {
	cfg, err := config.Load(path, nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	display := *cfg
	display.Graph.AccessToken = auth.MaskToken(display.Graph.AccessToken)

	data, err := yaml.Marshal(&display)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	_, err = w.Write(data)
	return err
}

func runConfigValidate(path string) error {
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		return err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		ui.PrintError("Configuration has errors")
		var joined interface{ Unwrap() []error }
		if errors.As(err, &joined) {
			for _, e := range joined.Unwrap() {
				ui.PrintError("  - " + e.Error())
			}
		} else {
			ui.PrintError("  - " + err.Error())
		}
		return errAlreadyReported
	}

	if cfg.Graph.AccessToken == "" {
		ui.PrintWarning("No access token configured", "tokens can also be passed as an argument or stored with 'igcomments auth login'")
	}

	ui.PrintSuccess("Configuration is valid")
	return nil
}
