package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/sharedledger/internal/auth"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
	"github.com/mmynk/sharedledger/internal/storage/sqlite"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sqlite.Migrate(c.dbPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", c.dbPath)
			return nil
		},
	}
}

func (c *cli) userCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var first, last, email, phone, password string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user with a bcrypt-hashed password",
		Long: `Create a user account. There is no self-service signup, so every
account is provisioned here.

Example:
  ledgerctl user add --first Ada --last Lovelace --email ada@example.com --password 's3cret-pass'

Prints the new user ID, a tab, then the display name and email.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := auth.NewPasswordAuthenticator(store).Provision(cmd.Context(), first, last, email, phone, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s <%s>\n", user.ID, user.DisplayName(), user.Email)
			return nil
		},
	}
	addCmd.Flags().StringVar(&first, "first", "", "first name")
	addCmd.Flags().StringVar(&last, "last", "", "last name")
	addCmd.Flags().StringVar(&email, "email", "", "email address")
	addCmd.Flags().StringVar(&phone, "phone", "", "phone number")
	addCmd.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	for _, name := range []string{"first", "email", "password"} {
		addCmd.MarkFlagRequired(name)
	}

	userCmd.AddCommand(addCmd)
	return userCmd
}

func (c *cli) tokenCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := store.GetUserByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("look up %s: %w", email, err)
			}

			token, err := auth.NewJWTManager(c.cfg.JWTSecret, c.cfg.TokenTTL).Generate(user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cmd.MarkFlagRequired("email")
	return cmd
}

// resolveUser accepts either a user ID or an email address.
func resolveUser(ctx context.Context, store storage.UserStore, ref string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if strings.Contains(ref, "@") {
		user, err = store.GetUserByEmail(ctx, ref)
	} else {
		user, err = store.GetUserByID(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("look up user %s: %w", ref, err)
	}
	return user, nil
}
