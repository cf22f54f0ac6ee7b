package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Saranya396/projectt/internal/adapters/storage"
	"github.com/Saranya396/projectt/pkg/config"
)

// storeOpener opens the record store the commands operate on
type storeOpener func(ctx context.Context) (*storage.Handle, error)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	if err := newRootCmd(openConfiguredStore).Execute(); err != nil {
		os.Exit(1)
	}
}

func openConfiguredStore(ctx context.Context) (*storage.Handle, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return storage.New(ctx, cfg, nil)
}

func newRootCmd(open storeOpener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "portalctl",
		Short:        "Administer the medicare portal record store",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(usersCmd(open))
	rootCmd.AddCommand(inventoryCmd(open))
	rootCmd.AddCommand(slotsCmd(open))
	return rootCmd
}

// withStore opens the store for the duration of fn
func withStore(cmd *cobra.Command, open storeOpener, fn func(ctx context.Context, h *storage.Handle) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	h, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing record store")
		}
	}()

	return fn(ctx, h)
}
