package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/mcp"
	"github.com/koustreak/dbscaffold/internal/server"
	"github.com/koustreak/dbscaffold/internal/version"
)

func serveCmd(current func() *app) *cobra.Command {
	var addr string
	var persist bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := newHTTPServer(ctx, a, persist)
			if err != nil {
				return err
			}
			return srv.Run(ctx, a.cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&persist, "persist", false, "allow requests to write artifacts to the configured output")
	return cmd
}

func newHTTPServer(ctx context.Context, a *app, persist bool) (*server.Server, error) {
	src, err := a.templateSource(ctx)
	if err != nil {
		return nil, err
	}
	kinds, err := a.artifactKinds()
	if err != nil {
		return nil, err
	}
	gen := a.generator(src)

	cfg := server.Config{
		Generator:       gen,
		Registry:        gen.Registry(),
		Templates:       src,
		Options:         a.cfg.Options(),
		DatabaseType:    a.cfg.Generator.DatabaseType,
		Artifacts:       kinds,
		Concurrency:     a.cfg.Generator.Concurrency,
		MaxBodyBytes:    a.cfg.Server.MaxBodyBytes,
		ReadTimeout:     a.cfg.Server.ReadTimeout,
		WriteTimeout:    a.cfg.Server.WriteTimeout,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
		Logger:          a.log,
	}
	if persist {
		if cfg.Sink, err = a.sink(ctx); err != nil {
			return nil, err
		}
	}
	return server.New(cfg), nil
}

func mcpCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve generation tools over the Model Context Protocol on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			src, err := a.templateSource(cmd.Context())
			if err != nil {
				return err
			}
			kinds, err := a.artifactKinds()
			if err != nil {
				return err
			}
			gen := a.generator(src)
			return mcp.Serve(version.Version, mcp.Deps{
				Generator:    gen,
				Registry:     dbtype.DefaultRegistry(),
				Templates:    src,
				Options:      a.cfg.Options(),
				DatabaseType: a.cfg.Generator.DatabaseType,
				Artifacts:    kinds,
				Concurrency:  a.cfg.Generator.Concurrency,
				Logger:       a.log,
			})
		},
	}
}
