package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ironsheep/polarity-mcp/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	srv := server.New(a.cfg, a.log)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.log.WithError(err).Error("Server error")
		return err
	}
	return nil
}
