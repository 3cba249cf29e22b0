package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	// Packages
	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	httphandler "github.com/mutablelogic/go-tools/pkg/httphandler"
	mcp "github.com/mutablelogic/go-tools/pkg/mcp"
	metrics "github.com/mutablelogic/go-tools/pkg/metrics"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	version "github.com/mutablelogic/go-tools/pkg/version"
	prometheus "github.com/prometheus/client_golang/prometheus"
	zap "go.uber.org/zap"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ServerCommands struct {
	Serve ServeCommand `cmd:"" name:"serve" help:"Serve tools over MCP on standard input and output." group:"SERVER"`
}

type ServeCommand struct {
	HTTP    string `name:"http" placeholder:"ADDR" help:"Also serve tools and metrics over HTTP on this address"`
	NoStdio bool   `name:"no-stdio" help:"Do not serve MCP on standard input and output"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	shutdownTimeout = 5 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ServeCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}
	if cmd.NoStdio && cmd.HTTP == "" {
		return errors.New("nothing to serve: use --http with --no-stdio")
	}

	// Register metrics
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return err
	}

	group, groupctx := errgroup.WithContext(ctx.ctx)
	if cmd.HTTP != "" {
		group.Go(func() error {
			return cmd.serveHTTP(groupctx, ctx.log, toolkit, registry)
		})
	}
	if !cmd.NoStdio {
		group.Go(func() error {
			return cmd.serveStdio(groupctx, ctx.log, toolkit)
		})
	}
	return group.Wait()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *ServeCommand) serveStdio(ctx context.Context, log *zap.Logger, toolkit *tool.Toolkit) error {
	names := make([]string, 0)
	for _, t := range toolkit.Tools() {
		names = append(names, t.Name())
	}
	log.Info("starting MCP server", zap.String("tools", strings.Join(names, ", ")))

	server, err := mcp.New("tools", version.Version(),
		mcp.WithToolkit(toolkit),
		mcp.WithLogger(log),
	)
	if err != nil {
		return err
	}
	return server.RunStdio(ctx, os.Stdin, os.Stdout)
}

func (cmd *ServeCommand) serveHTTP(ctx context.Context, log *zap.Logger, toolkit *tool.Toolkit, registry *prometheus.Registry) error {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	httphandler.RegisterHandlers(router, toolkit, registry, log)

	server := &http.Server{
		Addr:              cmd.HTTP,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shutdown when the context is done
	go func() {
		<-ctx.Done()
		shutdownctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownctx); err != nil {
			log.Warn("http shutdown", zap.Error(err))
		}
	}()

	log.Info("starting HTTP server", zap.String("addr", cmd.HTTP))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
