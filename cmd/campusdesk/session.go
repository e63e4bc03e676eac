package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/naveenspark/campusdesk/pkg/domain"
)

const signedOutHint = "Not signed in. Run `campusdesk login`."

func newLoginCmd(appFn func() *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Long: `Sign in with a campus account. Missing credentials are prompted for.
The token is stored for later commands and the console.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				if err := promptCredentials(&username, &password); err != nil {
					return err
				}
			}
			return codeErr(runLogin(cmd.Context(), appFn(), username, password))
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func promptCredentials(username, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(username).
				Validate(notBlank("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(notBlank("password")),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return exitCode(130)
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func notBlank(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func runLogin(ctx context.Context, a *app, username, password string) int {
	outcome := a.gateway.Login(ctx, strings.TrimSpace(username), password)
	if !outcome.Success {
		fmt.Fprintf(a.errOut, "%s %s\n", errStyle.Render("login failed:"), outcome.Reason)
		return 1
	}
	if a.json {
		writeJSON(a.out, outcome.User) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", titleStyle.Render(outcome.User.Username), outcome.User.Role())
	return 0
}

func newLogoutCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runLogout(cmd.Context(), appFn()))
		},
	}
}

func runLogout(ctx context.Context, a *app) int {
	if !a.gateway.HasSession() {
		fmt.Fprintln(a.out, "Already signed out.")
		return 0
	}
	a.gateway.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return 0
}

func newWhoamiCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the stored session and show its user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runWhoami(cmd.Context(), appFn()))
		},
	}
}

func runWhoami(ctx context.Context, a *app) int {
	had := a.gateway.HasSession()
	user, err := a.gateway.CurrentUser(ctx)
	if err != nil {
		return a.fail(err)
	}
	if user == nil {
		if had {
			fmt.Fprintln(a.errOut, errStyle.Render("session expired: run `campusdesk login`"))
		} else {
			fmt.Fprintln(a.errOut, signedOutHint)
		}
		return 1
	}
	if a.json {
		writeJSON(a.out, user) //nolint:errcheck
		return 0
	}
	writeFields(a.out, user.Username,
		"user id", fmt.Sprint(user.UserID),
		"role", user.Role(),
	)
	return 0
}

func newRegisterCmd(appFn func() *app) *cobra.Command {
	var c domain.Candidate
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create a new account. Registering does not sign you in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runRegister(cmd.Context(), appFn(), c))
		},
	}
	cmd.Flags().StringVar(&c.Username, "username", "", "Account username (required)")
	cmd.Flags().StringVar(&c.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&c.Password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&c.Role, "role", domain.RoleStudent, "Role: admin, teacher or student")
	cmd.MarkFlagRequired("username") //nolint:errcheck
	cmd.MarkFlagRequired("email")    //nolint:errcheck
	cmd.MarkFlagRequired("password") //nolint:errcheck
	return cmd
}

func runRegister(ctx context.Context, a *app, c domain.Candidate) int {
	if c.Role != "" && !domain.ValidRole(c.Role) {
		fmt.Fprintf(a.errOut, "%s unknown role %q (want %s)\n", errStyle.Render("error:"), c.Role, strings.Join(domain.ValidRoles, ", "))
		return 1
	}
	outcome := a.gateway.Register(ctx, c)
	if !outcome.Success {
		fmt.Fprintf(a.errOut, "%s %s\n", errStyle.Render("registration failed:"), outcome.Reason)
		return 1
	}
	if a.json {
		writeJSON(a.out, outcome.Account) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Registered %s (%s), id %d. Run `campusdesk login` to sign in.\n",
		okStyle.Render(outcome.Account.Username), outcome.Account.Role, outcome.Account.ID)
	return 0
}

func newTokenCmd(appFn func() *app) *cobra.Command {
	var copyToClipboard bool
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runToken(appFn(), copyToClipboard, clipboard.WriteAll))
		},
	}
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the token to the clipboard instead of printing it")
	return cmd
}

func runToken(a *app, copyToClipboard bool, write func(string) error) int {
	tok, ok := a.gateway.Token()
	if !ok {
		fmt.Fprintln(a.errOut, signedOutHint)
		return 1
	}
	if !copyToClipboard {
		fmt.Fprintln(a.out, tok)
		return 0
	}
	if err := write(tok); err != nil {
		return a.fail(fmt.Errorf("copy to clipboard: %w", err))
	}
	fmt.Fprintln(a.out, "Token copied to clipboard.")
	return 0
}
