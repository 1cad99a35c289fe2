package main

import (
	"os"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/cmd"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/log"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	rewriteFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "materials, m",
			Usage: "material library (.yaml, .toml or .mtl)",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "output scene file; defaults to rewriting the scene in place",
		},
		cli.StringFlag{
			Name:  "textures, t",
			Usage: "directory for copied textures; defaults to the output scene dir",
		},
		cli.StringFlag{
			Name:  "project, p",
			Usage: "base dir for relative (//) texture paths; defaults to the material library dir",
		},
	}

	app := cli.NewApp()
	app.Name = "pbrt-exporter"
	app.Usage = "inject material and light settings into exported pbrt scenes"
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
	}
	app.Commands = []cli.Command{
		{
			Name:  "rewrite",
			Usage: "rewrite material definitions and area light emission",
			Description: `
Parse an exported pbrt scene, replace the body of every MakeNamedMaterial
block with the parameters of the matching material library entry and set the
radiance of every area light to the emission of its assigned material.

Textures referenced by the library are copied next to the scene as tex_N files
and declared in front of the material that uses them.`,
			ArgsUsage: "scene.pbrt",
			Flags:     rewriteFlags,
			Action:    cmd.RewriteScene,
		},
		{
			Name:  "assemble",
			Usage: "wrap an exported world body with the scene header",
			Description: `
Write the Film, Integrator, Sampler and camera statements followed by
WorldBegin, the exported world body and WorldEnd.`,
			ArgsUsage: "body.pbrt",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "settings, s",
					Usage: "render settings file (.yaml or .toml)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "scene.pbrt",
					Usage: "output scene file",
				},
			},
			Action: cmd.AssembleScene,
		},
		{
			Name:      "inspect",
			Usage:     "list the light and material blocks of a scene",
			ArgsUsage: "scene.pbrt",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all, a",
					Usage: "list every block",
				},
			},
			Action: cmd.InspectScene,
		},
		{
			Name:      "watch",
			Usage:     "rewrite the scene whenever it or the material library changes",
			ArgsUsage: "scene.pbrt",
			Flags:     rewriteFlags,
			Action:    cmd.WatchScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("pbrt-exporter").Error(err)
		os.Exit(1)
	}
}
