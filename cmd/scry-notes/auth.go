package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRegisterCmd(c *cli) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.Auth.Register(ctx(cmd), email, name, password)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(user)
			}
			c.printf("Logged in as %s\n", describeUser(user.Name, user.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd(c *cli) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.Auth.Login(ctx(cmd), email, password)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(user)
			}
			c.printf("Logged in as %s\n", describeUser(user.Name, user.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Auth.Logout(ctx(cmd))
			return nil
		},
	}
}

var errNotLoggedIn = errors.New("not logged in")

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			user, ok := c.app.Auth.CurrentUser()
			if !ok {
				return errNotLoggedIn
			}
			if c.jsonOutput {
				return c.printJSON(user)
			}
			c.printf("%s\n", describeUser(user.Name, user.Email))
			return nil
		},
	}
}

func describeUser(name, email string) string {
	if name == "" {
		return email
	}
	return name + " <" + email + ">"
}
