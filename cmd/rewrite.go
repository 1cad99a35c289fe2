package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset/material"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset/texture"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene/rewrite"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Options shared by the rewrite and watch commands.
type rewriteOptions struct {
	scenePath   string
	outPath     string
	libraryPath string
	textureDir  string
	projectDir  string
}

func parseRewriteOptions(ctx *cli.Context) (*rewriteOptions, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("missing scene file argument")
	}
	if ctx.String("materials") == "" {
		return nil, errors.New("missing material library; use --materials")
	}

	var (
		opts = &rewriteOptions{}
		err  error
	)

	paths := []struct {
		value  string
		target *string
	}{
		{ctx.Args().First(), &opts.scenePath},
		{ctx.String("out"), &opts.outPath},
		{ctx.String("materials"), &opts.libraryPath},
		{ctx.String("textures"), &opts.textureDir},
		{ctx.String("project"), &opts.projectDir},
	}
	for _, p := range paths {
		if *p.target, err = homedir.Expand(p.value); err != nil {
			return nil, err
		}
	}

	// Defaults follow the exporter layout: the scene is rewritten in place and
	// textures are copied next to it.
	if opts.outPath == "" {
		opts.outPath = opts.scenePath
	}
	if opts.textureDir == "" {
		opts.textureDir = filepath.Dir(opts.outPath)
	}
	if opts.projectDir == "" {
		opts.projectDir = filepath.Dir(opts.libraryPath)
	}

	return opts, nil
}

// Run a single rewrite pass. Each pass uses a fresh texture registry so
// texture names restart from tex_1.
func runRewrite(opts *rewriteOptions) error {
	lib, err := material.LoadLibrary(opts.libraryPath)
	if err != nil {
		return err
	}
	logger.Infof("loaded %d materials from %s", lib.Len(), opts.libraryPath)

	if err = os.MkdirAll(opts.textureDir, 0755); err != nil {
		return err
	}

	textures := texture.NewRegistry(opts.textureDir, opts.projectDir)
	changes, err := rewrite.New(lib, textures).RewriteFile(opts.scenePath, opts.outPath)
	if err != nil {
		return err
	}

	logger.Noticef("rewrote %s -> %s\n%s", opts.scenePath, opts.outPath, changeTable(changes, textures.Entries()))
	return nil
}

// Rewrite an exported scene using a material library.
func RewriteScene(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := parseRewriteOptions(ctx)
	if err != nil {
		return err
	}
	return runRewrite(opts)
}

func changeTable(changes []rewrite.Change, textures []texture.Entry) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Block", "Target", "Name", "Value"})

	fallbacks := 0
	for _, change := range changes {
		value := change.Detail
		if change.Fallback {
			value += " (fallback)"
			fallbacks++
		}
		table.Append([]string{fmt.Sprintf("%d", change.Index), change.Target, change.Name, value})
	}
	for _, entry := range textures {
		table.Append([]string{"", "texture", entry.Name, fmt.Sprintf("%s (%s)", entry.Source, entry.Class)})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d fallbacks", fallbacks), fmt.Sprintf("%d textures", len(textures))})

	table.Render()
	return buf.String()
}
