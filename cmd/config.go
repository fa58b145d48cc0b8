package cmd

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/geometry"
	"github.com/patricklbell/raytracer/loader"
)

// loadConfig builds the load configuration: defaults, then the optional
// --config file, then command flags.
func loadConfig(ctx *cli.Context) (loader.Config, error) {
	cfg := loader.DefaultConfig()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = loader.ReadConfig(path); err != nil {
			return cfg, err
		}
		logger.Infof(`using config "%s"`, path)
	}

	if ctx.IsSet("mode") {
		mode, err := geometry.ParseMode(ctx.String("mode"))
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if ctx.IsSet("format") {
		format, err := loader.ParseFormat(ctx.String("format"))
		if err != nil {
			return cfg, err
		}
		cfg.Format = format
	}
	if ctx.IsSet("miss-length") {
		cfg.MissLength = float32(ctx.Float64("miss-length"))
	}
	if ctx.Bool("no-hit-points") {
		cfg.DrawHitPoints = false
	}

	return cfg, cfg.Validate()
}

// handleLoadError reports an empty dump as a notice instead of a failure.
func handleLoadError(err error) error {
	if errors.Is(err, loader.ErrEmptyInput) {
		logger.Notice(err.Error())
		return nil
	}
	logger.Error(err.Error())
	return loggedError{err}
}
