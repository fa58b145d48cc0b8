package cmd

import (
	"bytes"
	"errors"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/export"
	"github.com/patricklbell/raytracer/loader"
)

// Decode a BVH dump, print its statistics and optionally export geometry
// as JSON and the boxes as STL.
func LoadBVH(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing BVH dump argument")
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	res, err := loader.LoadBVH(ctx.Args().First(), cfg)
	if err != nil {
		return handleLoadError(err)
	}

	var buf bytes.Buffer
	export.BVHStats(&buf, res)
	logger.Noticef("BVH information:\n%s", buf.String())

	if err = writeDocument(ctx.String("out"), export.NewBVHDocument(res)); err != nil {
		return err
	}

	if stlFile := ctx.String("stl"); stlFile != "" {
		count, err := export.WriteSTL(stlFile, res.Geometry.Meshes())
		if err != nil {
			return err
		}
		logger.Noticef(`wrote %d triangles to "%s"`, count, stlFile)
	}

	return nil
}
