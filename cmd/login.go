package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/artemis-companion-cli/internal/application"
)

var errPasswordMissing = errors.New("password is empty")

func newLoginCmd(app *app) *cobra.Command {
	var (
		username      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Artemis server and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.authService()
			if err != nil {
				return err
			}

			if !passwordStdin {
				if _, err := fmt.Fprint(cmd.ErrOrStderr(), "Password: "); err != nil {
					return err
				}
			}
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}

			account, err := svc.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			name := account.Login
			if account.Name != "" {
				name = fmt.Sprintf("%s (%s)", account.Name, account.Login)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", name)
			return err
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Artemis username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin without prompting")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errPasswordMissing
	}
	return password, nil
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session, the exercise registry and the context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.authService()
			if err != nil {
				return err
			}
			if err := svc.Logout(cmd.Context()); err != nil {
				return err
			}
			if app.platform != nil {
				app.platform.Flush()
			}

			if err := app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				return workbench.Logout(cmd.Context())
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return err
		},
	}
}
