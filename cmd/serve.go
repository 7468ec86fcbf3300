package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/desertthunder/playdeck/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the local preview server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := server.NewRouter(r.engine, r.logger)
	r.writePlain("→ Serving %s data on http://%s (ctrl+c to stop)\n", r.service.Name(), addr)
	return server.New(addr, router, r.logger).Run(ctx)
}
