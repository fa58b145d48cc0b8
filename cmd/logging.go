package cmd

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/patricklbell/raytracer/log"
)

var logger = log.New("raydump")

func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}

// loggedError marks an error that a command already reported.
type loggedError struct {
	error
}

func (e loggedError) Unwrap() error {
	return e.error
}

// ReportError logs a command failure unless the command already did.
// urfave/cli only prints errors that carry an exit code, so main calls this
// before exiting.
func ReportError(err error) {
	var logged loggedError
	if err == nil || errors.As(err, &logged) {
		return
	}
	logger.Error(err.Error())
}
