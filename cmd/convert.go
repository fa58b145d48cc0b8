package cmd

import (
	"errors"
	"os"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/bvh"
	"github.com/patricklbell/raytracer/loader"
)

// Convert a BVH dump between the text and binary encodings.
func ConvertBVH(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected input and output file arguments")
	}

	from, err := loader.ParseFormat(ctx.String("format"))
	if err != nil {
		return err
	}
	to, err := loader.ParseFormat(ctx.String("to"))
	if err != nil {
		return err
	}

	root, from, err := loader.LoadTree(ctx.Args().Get(0), from)
	if err != nil {
		return handleLoadError(err)
	}

	// Default to the other encoding.
	if to == loader.AutoFormat {
		to = loader.TextFormat
		if from == loader.TextFormat {
			to = loader.BinaryFormat
		}
	}

	outFile := ctx.Args().Get(1)
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}

	if to == loader.TextFormat {
		err = bvh.WriteText(f, root)
	} else {
		err = bvh.WriteBinary(f, root)
	}
	if err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	logger.Noticef(`converted %s dump to %s dump "%s"`, from, to, outFile)
	return nil
}
