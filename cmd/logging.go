package cmd

import (
	"github.com/giuliojiang/pbrt-v3-blender-exporter/log"
	"github.com/urfave/cli"
)

var logger = log.New("pbrt-exporter")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
