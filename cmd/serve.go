package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/Ahananian1/air-quality-explorer/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveLoad loadFlags
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Run the interactive dashboard",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := settings()
		if err != nil {
			return err
		}
		run := *c
		if len(args) > 0 {
			run.DataPath = args[0]
		}
		if serveAddr != "" {
			run.ListenAddr = serveAddr
		}
		opt, err := serveLoad.options()
		if err != nil {
			return err
		}
		cache := dataset.NewCache(opt)
		// Warm the cache so a bad file is reported at startup; the
		// dashboard still serves and shows the error.
		if _, err := cache.Load(run.DataPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
		}
		srv, err := server.New(&run, cache)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s on http://%s\n", run.DataPath, run.ListenAddr)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveLoad.register(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config listen_addr)")
}
