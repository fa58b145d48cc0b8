package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	loadFlags := []cli.Flag{
		cli.Float64Flag{
			Name:  "miss-length",
			Value: 2.0,
			Usage: "segment length for rays that missed",
		},
		cli.BoolFlag{
			Name:  "no-hit-points",
			Usage: "do not emit hit point markers",
		},
		cli.StringFlag{
			Name:  "mode, m",
			Value: "flat",
			Usage: "BVH projection mode: flat (one mesh per depth) or grouping (one group per branch)",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: "auto",
			Usage: "BVH dump encoding: auto, text or binary",
		},
	}

	app := cli.NewApp()
	app.Name = "raydump"
	app.Usage = "decode ray tracer and BVH debug dumps into viewer geometry"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, notice, warning or error",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML file with load settings",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "rays",
			Usage: "decode a ray dump",
			Description: `
Decode a flat ray dump (60 byte records) and print hit/miss statistics.
Rays are split into hit and miss segment sets in viewer coordinates and can
be exported as a JSON document.`,
			ArgsUsage: "rays.bin",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the JSON document to this file (- for stdout)",
				},
			}, loadFlags...),
			Action: cmd.LoadRays,
		},
		{
			Name:  "bvh",
			Usage: "decode a BVH dump",
			Description: `
Decode a text or binary BVH dump and project every node into a wire box.
In flat mode boxes are bucketed by tree depth; in grouping mode a named
group is opened wherever the tree branches.`,
			ArgsUsage: "bvh.bin",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the JSON document to this file (- for stdout)",
				},
				cli.StringFlag{
					Name:  "stl",
					Usage: "write the boxes as a binary STL file",
				},
			}, loadFlags...),
			Action: cmd.LoadBVH,
		},
		{
			Name:      "convert",
			Usage:     "convert a BVH dump between the text and binary encodings",
			ArgsUsage: "in out",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Value: "auto",
					Usage: "input encoding: auto, text or binary",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "auto",
					Usage: "output encoding: text or binary (default: the other one)",
				},
			},
			Action: cmd.ConvertBVH,
		},
		{
			Name:      "synth",
			Usage:     "write a BVH dump over randomly scattered boxes",
			ArgsUsage: "out",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "boxes, n",
					Value: 64,
					Usage: "number of boxes",
				},
				cli.Float64Flag{
					Name:  "spread",
					Value: 10,
					Usage: "side of the cube the boxes are scattered in",
				},
				cli.IntFlag{
					Name:  "leaf-size",
					Value: 1,
					Usage: "maximum number of boxes per leaf",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed",
				},
				cli.StringFlag{
					Name:  "format, f",
					Value: "binary",
					Usage: "output encoding: text or binary",
				},
			},
			Action: cmd.SynthBVH,
		},
		{
			Name:  "serve",
			Usage: "serve projected dumps over HTTP",
			Description: `
Serve JSON documents for the configured dumps. Dumps are decoded again on
every request so a viewer always sees the latest run.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "rays",
					Usage: "ray dump file or URL",
				},
				cli.StringFlag{
					Name:  "bvh",
					Usage: "BVH dump file or URL",
				},
				cli.StringFlag{
					Name:  "addr",
					Value: ":8080",
					Usage: "listen address",
				},
			}, loadFlags...),
			Action: cmd.Serve,
		},
	}

	if err := app.Run(os.Args); err != nil {
		cmd.ReportError(err)
		os.Exit(1)
	}
}
