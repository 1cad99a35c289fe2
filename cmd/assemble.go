package cmd

import (
	"errors"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene/header"
	"github.com/urfave/cli"
)

// Wrap an exported world body with the film, sampler and camera header.
func AssembleScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing world body file argument")
	}
	if ctx.String("out") == "" {
		return errors.New("missing output file; use --out")
	}

	settings := header.DefaultSettings()
	if settingsFile := ctx.String("settings"); settingsFile != "" {
		var err error
		if settings, err = header.LoadSettings(settingsFile); err != nil {
			return err
		}
	}

	return header.AssembleFile(settings, ctx.Args().First(), ctx.String("out"))
}
