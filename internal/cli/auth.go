package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/startuplens/lens/internal/api"
	"github.com/startuplens/lens/internal/apierr"
	"github.com/startuplens/lens/internal/validate"
	"github.com/startuplens/lens/pkg/session"
)

func newLoginCommand(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Drop any leftover session before the new attempt so a
			// stale token can never leak into it.
			app.Auth.Logout()

			if fields := validate.Login(username, password); fields != nil {
				return apierr.Validation(fields)
			}

			creds := session.Credentials{UsernameOrEmail: username, Password: password}
			if err := app.Auth.Login(cmd.Context(), creds); err != nil {
				return err
			}

			s := app.Auth.Session()
			fmt.Fprintf(app.Out, "Logged in. Session valid until %s.\n",
				s.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			app.Auth.Logout()
			fmt.Fprintln(app.Out, "Logged out.")
		},
	}
}

func newRegisterCommand(app *App) *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fields := validate.Register(req); fields != nil {
				return apierr.Validation(fields)
			}

			resp, err := app.API.Register(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Account %q created. Run 'lens login' to continue.\n", resp.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password")
	return cmd
}
