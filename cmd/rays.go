package cmd

import (
	"bytes"
	"errors"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/export"
	"github.com/patricklbell/raytracer/loader"
)

// Decode a ray dump, print its statistics and optionally export geometry.
func LoadRays(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing ray dump argument")
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	res, err := loader.LoadRays(ctx.Args().First(), cfg)
	if err != nil {
		return handleLoadError(err)
	}

	var buf bytes.Buffer
	export.RayStats(&buf, res)
	logger.Noticef("ray dump information:\n%s", buf.String())

	return writeDocument(ctx.String("out"), export.NewRayDocument(res))
}
