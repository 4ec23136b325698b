// Command server runs the Zahro quiz API: upload a document, get a timed
// multiple-choice quiz extracted by Gemini, and a graded certificate when
// the quiz ends.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zahroai/zahro-api/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zahro-api",
		Short:         "Quiz generation and certification API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			app, err := newApplication(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			return app.startHTTPServer(ctx, app.setupRouter())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (optional)")
	cmd.Flags().IntVar(&port, "port", 0, "override the configured listen port")
	return cmd
}
