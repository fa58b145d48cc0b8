package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/bvh"
	"github.com/patricklbell/raytracer/loader"
	"github.com/patricklbell/raytracer/types"
)

// Build a BVH over randomly scattered boxes and write it as a dump. This is
// handy for exercising a viewer without running the tracer.
func SynthBVH(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("expected output file argument")
	}

	count := ctx.Int("boxes")
	if count < 1 {
		return fmt.Errorf("box count must be positive; got %d", count)
	}
	spread := ctx.Float64("spread")
	if spread <= 0 {
		return fmt.Errorf("spread must be positive; got %g", spread)
	}
	format, err := loader.ParseFormat(ctx.String("format"))
	if err != nil {
		return err
	}

	root := bvh.Build(randomBoxes(rand.New(rand.NewSource(ctx.Int64("seed"))), count, spread), ctx.Int("leaf-size"))

	outFile := ctx.Args().First()
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}

	if format == loader.TextFormat {
		err = bvh.WriteText(f, root)
	} else {
		format = loader.BinaryFormat
		err = bvh.WriteBinary(f, root)
	}
	if err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	stats := root.Stats()
	logger.Noticef(`wrote %s dump "%s" (%d nodes, max depth %d)`, format, outFile, stats.Nodes, stats.MaxDepth)
	return nil
}

// Boxes with sides in [0.1, 1) scattered inside a cube of the given size.
func randomBoxes(rng *rand.Rand, count int, spread float64) []bvh.Bounds {
	boxes := make([]bvh.Bounds, count)
	for i := range boxes {
		min := types.Vec3d{
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
		}
		side := types.Vec3d{0.1 + rng.Float64()*0.9, 0.1 + rng.Float64()*0.9, 0.1 + rng.Float64()*0.9}
		boxes[i] = bvh.Bounds{Min: min, Max: min.Add(side)}
	}
	return boxes
}
