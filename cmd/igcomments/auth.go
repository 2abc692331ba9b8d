package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"igcomments/pkg/auth"
	"igcomments/pkg/ui"
)

// newCredentialManager is swapped out in tests
var newCredentialManager = auth.NewManager

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored access tokens",
	Long: `Manage Graph API access tokens stored in the system keychain.

Stored tokens are used when no access_token argument is given and
IGCOMMENTS_ACCESS_TOKEN is unset. Obtaining or refreshing a token is up to
you; igcomments only keeps it.`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [account]",
	Short: "Store an access token",
	Long: `Store a Graph API access token under an account name (default "default").

The token is read from the terminal without echo, or from the first line of
standard input when it is not a terminal.`,
	Example: `  # Store the default token
  igcomments auth login

  # Store a token for a second page
  igcomments auth login agency
  echo "$TOKEN" | igcomments auth login agency`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(newCredentialManager(), accountArg(args), cmd.InOrStdin(), cmd.ErrOrStderr())
	},
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout [account]",
	Short: "Remove a stored access token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogout(newCredentialManager(), accountArg(args))
	},
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List stored accounts with masked tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(newCredentialManager(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}

func accountArg(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0])
	}
	return auth.DefaultAccount
}

func runLogin(manager *auth.Manager, name string, in io.Reader, prompt io.Writer) error {
	fmt.Fprintf(prompt, "Access token for %q: ", name)
	token, err := readSecret(in)
	fmt.Fprintln(prompt)
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}

	if err := manager.Store(&auth.Account{Name: name, AccessToken: token}); err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Token stored for account %s (%s)", name, auth.MaskToken(token)))
	return nil
}

func runLogout(manager *auth.Manager, name string) error {
	if err := manager.Delete(name); err != nil {
		return err
	}
	ui.PrintSuccess("Token removed for account " + name)
	return nil
}

func runStatus(manager *auth.Manager, w io.Writer) error {
	accounts, err := manager.List()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	if len(accounts) == 0 {
		ui.PrintInfo("No stored accounts", "use 'igcomments auth login' to add one")
		return nil
	}

	for _, account := range accounts {
		sanitized := auth.SanitizeAccount(account)
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			sanitized.Name,
			sanitized.AccessToken,
			sanitized.LastModified.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// readSecret reads a token without echo from a terminal, or a line otherwise
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
