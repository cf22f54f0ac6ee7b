package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Saranya396/projectt/internal/adapters/database"
	"github.com/Saranya396/projectt/internal/adapters/storage"
	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/domain/entities"
)

func accountsFor(h *storage.Handle) *services.AccountService {
	return services.NewAccountService(database.NewUserRepository(h.Store), services.NewIDGenerator(services.SystemClock{}))
}

func usersCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List accounts and change their status",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every registered account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")

			return withStore(cmd, open, func(ctx context.Context, h *storage.Handle) error {
				accounts := accountsFor(h)

				var users []entities.User
				var err error
				if role != "" {
					if !entities.Role(role).Valid() {
						return fmt.Errorf("unknown role %q", role)
					}
					users, err = accounts.ListByRole(ctx, entities.Role(role))
				} else {
					users, err = accounts.ListUsers(ctx)
				}
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
				for _, u := range users {
					p := u.Profile()
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.FullName, p.Email, p.Role, p.Status)
				}
				return tw.Flush()
			})
		},
	}
	listCmd.Flags().String("role", "", "Only list accounts with this role")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(statusCmd(open, "allow", "Let an account log in again", entities.UserStatusActive))
	cmd.AddCommand(statusCmd(open, "deny", "Block an account from logging in", entities.UserStatusDenied))
	return cmd
}

func statusCmd(open storeOpener, use, short string, status entities.UserStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			return withStore(cmd, open, func(ctx context.Context, h *storage.Handle) error {
				user, err := accountsFor(h).SetStatus(ctx, id, status)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", user.Email, user.Role, user.Status)
				return nil
			})
		},
	}
}

func inventoryCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage the pharmacy inventory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Write the sample inventory if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(ctx context.Context, h *storage.Handle) error {
				clock := services.SystemClock{}
				pharmacy := services.NewPharmacistService(
					database.NewPrescriptionRepository(h.Store),
					database.NewInventoryRepository(h.Store),
					services.NewIDGenerator(clock),
					clock,
				)

				items, seeded, err := pharmacy.SeedInventory(ctx)
				if err != nil {
					return err
				}
				if seeded {
					fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d inventory item(s).\n", len(items))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Inventory already holds %d item(s), nothing to do.\n", len(items))
				}
				return nil
			})
		},
	})
	return cmd
}

func slotsCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Inspect raw record store slots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the slots present in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(ctx context.Context, h *storage.Handle) error {
				keys, err := h.Store.Keys(ctx)
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dump <key>",
		Short: "Print the JSON held in a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(ctx context.Context, h *storage.Handle) error {
				payload, err := h.Store.Read(ctx, args[0])
				if err != nil {
					return err
				}
				if payload == nil {
					return fmt.Errorf("slot %q not found", args[0])
				}

				var pretty bytes.Buffer
				if err := json.Indent(&pretty, payload, "", "  "); err != nil {
					// corrupt slots are printed as stored
					pretty.Reset()
					pretty.Write(payload)
				}
				fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
				return nil
			})
		},
	})
	return cmd
}
