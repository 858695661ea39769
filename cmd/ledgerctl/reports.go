package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/sharedledger/internal/calculator"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
)

func (c *cli) oweOwedCmd() *cobra.Command {
	var groupID, viewer string
	cmd := &cobra.Command{
		Use:   "owe-owed",
		Short: "Print a member's owed map for a group as JSON",
		Long: `Print how much every other member owes the viewer (positive) or is
owed by the viewer (negative).

Example:
  ledgerctl owe-owed --group 3f2c... --viewer ada@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()

			user, err := resolveUser(ctx, store, viewer)
			if err != nil {
				return err
			}
			group, err := store.GetGroup(ctx, groupID)
			if err != nil {
				return fmt.Errorf("load group %s: %w", groupID, err)
			}
			if !group.IsMember(user.ID) {
				return fmt.Errorf("%s is not a member of %s", viewer, group.Name)
			}

			txs, err := store.ListTransactions(ctx, storage.TransactionFilter{GroupID: group.ID})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), calculator.ComputeOwedMap(group, txs, user.ID))
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "group ID")
	cmd.Flags().StringVar(&viewer, "viewer", "", "viewer user ID or email")
	cmd.MarkFlagRequired("group")
	cmd.MarkFlagRequired("viewer")
	return cmd
}

func (c *cli) summaryCmd() *cobra.Command {
	var ref string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a user's per-category spend as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()

			user, err := resolveUser(ctx, store, ref)
			if err != nil {
				return err
			}
			expenses, err := store.ListTransactions(ctx, storage.TransactionFilter{
				Type:    models.TransactionExpense,
				ActorID: user.ID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), calculator.ComputeSummary(expenses, user.ID, user.Settings.Limits))
		},
	}
	cmd.Flags().StringVar(&ref, "user", "", "user ID or email")
	cmd.MarkFlagRequired("user")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
