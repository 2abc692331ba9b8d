package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"igcomments/pkg/auth"
	"igcomments/pkg/comments"
	"igcomments/pkg/config"
	"igcomments/pkg/instagram"
	"igcomments/pkg/logger"
	"igcomments/pkg/ui"
)

// unlinkedAccountMessage is printed when a page has no business account
const unlinkedAccountMessage = "Could not retrieve instagram business account. Ensure the page ID and token are valid."

// errAlreadyReported marks failures whose diagnostic is already on stderr
var errAlreadyReported = errors.New("already reported")

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
	verbose    bool

	// Comment retrieval flags
	limit        int
	timeout      time.Duration
	outputFormat string
	accountName  string
	baseURL      string
	apiVersion   string
)

// rootCmd fetches comments when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "igcomments [flags] <page_id> [access_token]",
	Short: "Print the comments on an Instagram business account's recent media",
	Long: `igcomments resolves the Instagram business account linked to a Facebook
page, lists its most recent media and prints every comment on them, newest
first.

The access token is taken from, in order:
  - the access_token argument
  - the IGCOMMENTS_ACCESS_TOKEN environment variable or the config file
  - a token stored with 'igcomments auth login'`,
	Example: `  # Print comments on the 25 most recent posts
  igcomments 1234567890 EAAB...

  # Use a stored token and look at the last 5 posts only
  igcomments 1234567890 --limit 5

  # Emit JSON for further processing
  igcomments 1234567890 --format json | jq '.[].text'`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetNoColor(noColor)
		ui.SetQuietMode(quiet)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commentsOptions{
			PageID:     strings.TrimSpace(args[0]),
			Account:    accountName,
			ConfigPath: configFile,
			Flags:      collectFlags(cmd),
		}
		if len(args) > 1 {
			opts.Flags["access-token"] = strings.TrimSpace(args[1])
		}
		return runComments(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errAlreadyReported) {
			ui.PrintError("Error", err.Error())
		}
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.igcomments.yaml or ~/.config/igcomments/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request")

	// Comment retrieval flags
	rootCmd.Flags().IntVarP(&limit, "limit", "l", config.DefaultLimit, "number of recent media items to read comments from")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (0 waits indefinitely)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, json)")
	rootCmd.Flags().StringVarP(&accountName, "account", "a", "", "stored account to take the access token from")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Graph API base URL")
	rootCmd.Flags().StringVar(&apiVersion, "api-version", "", "Graph API version")

	rootCmd.SetVersionTemplate(`igcomments {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// collectFlags returns the explicitly set flags in the shape
// config.MergeCommandLineFlags expects.
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	changed := cmd.Flags().Changed

	if changed("limit") {
		flags["limit"] = limit
	}
	if changed("timeout") {
		flags["timeout"] = timeout
	}
	if outputFormat != "" {
		flags["format"] = outputFormat
	}
	if baseURL != "" {
		flags["base-url"] = baseURL
	}
	if apiVersion != "" {
		flags["api-version"] = apiVersion
	}
	if noColor {
		flags["no-color"] = true
	}

	switch {
	case verbose:
		flags["log-level"] = "debug"
	case quiet:
		flags["log-level"] = "error"
	case logLevel != "":
		flags["log-level"] = logLevel
	}

	return flags
}

// commentsOptions carries one comment retrieval run
type commentsOptions struct {
	PageID     string
	Account    string
	ConfigPath string
	Flags      map[string]interface{}

	// Credentials defaults to the system credential manager
	Credentials *auth.Manager
}

// runComments resolves the page, collects comments and writes them to stdout.
// An unlinked page prints a diagnostic to stderr and returns errAlreadyReported.
func runComments(ctx context.Context, opts commentsOptions, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath, opts.Flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	ui.SetNoColor(!cfg.Output.Color)

	log, err := logger.New(&cfg.Logging, logger.Options{NoColor: !cfg.Output.Color})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.WithField("run_id", uuid.NewString())
	logger.SetLogger(log)

	token, source, err := resolveToken(cfg, opts)
	if err != nil {
		return err
	}

	presenter, err := comments.NewPresenter(cfg.Output.Format)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"page_id":      opts.PageID,
		"token_source": source,
		"limit":        cfg.Comments.Limit,
	}).Debug("Starting comment retrieval")

	client := instagram.NewClient(cfg.Graph.Timeout, log,
		instagram.WithBaseURL(cfg.Graph.BaseURL),
		instagram.WithAPIVersion(cfg.Graph.APIVersion),
	)
	svc := comments.New(client, log)

	result, err := svc.Fetch(ctx, opts.PageID, token, cfg.Comments.Limit)
	if errors.Is(err, comments.ErrNoBusinessAccount) {
		log.WithField("page_id", opts.PageID).Debug("Page has no business account, stopping")
		fmt.Fprintln(stderr, unlinkedAccountMessage)
		return errAlreadyReported
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve comments: %w", err)
	}

	return presenter.Present(stdout, result)
}

// resolveToken picks the access token: argument or environment or config
// file (already merged into cfg), then the credential store.
func resolveToken(cfg *config.Config, opts commentsOptions) (token, source string, err error) {
	if cfg.Graph.AccessToken != "" {
		return cfg.Graph.AccessToken, "config", nil
	}

	manager := opts.Credentials
	if manager == nil {
		manager = newCredentialManager()
	}

	name := opts.Account
	if name == "" {
		name = auth.DefaultAccount
	}

	token, err = manager.Token(name)
	if err != nil {
		return "", "", fmt.Errorf("no access token given and none stored for account %q (pass one as an argument or run 'igcomments auth login'): %w", name, err)
	}
	return token, "credential store", nil
}
