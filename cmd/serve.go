package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/server"
)

// Serve projected dumps over HTTP until interrupted.
func Serve(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts := server.Options{
		RaysPath: ctx.String("rays"),
		BVHPath:  ctx.String("bvh"),
	}
	if opts.RaysPath == "" && opts.BVHPath == "" {
		return errors.New("at least one of --rays or --bvh is required")
	}

	var err error
	if opts.Config, err = loadConfig(ctx); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(sigCtx, ctx.String("addr"), server.New(opts))
}
