package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/sheettracker/internal/gateway"
	"github.com/idilsaglam/sheettracker/internal/store"
	"github.com/idilsaglam/sheettracker/internal/tui"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the import gateway (POST /api/parse/excel, /api/parse/github)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := gateway.Config{Addr: a.cfg.Server.Addr, MaxUploadBytes: a.cfg.Server.MaxUploadBytes}
			if addr != "" {
				cfg.Addr = addr
			}
			parent := c.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return gateway.NewServer(cfg, a.service(), a.logger).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive list: toggle, delete, filter and import",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(*cobra.Command, []string) error {
			celebration := &tui.Celebration{}
			confirm := &tui.Confirmation{}
			s, release, err := a.openStore(store.WithCelebrator(celebration), store.WithConfirmer(confirm))
			if err != nil {
				return err
			}
			defer release()
			return tui.Run(s, a.importer(), tui.Options{
				Logger:       a.logger,
				Celebration:  celebration,
				Confirmation: confirm,
			})
		},
	}
}
