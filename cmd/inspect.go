package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene/rewrite"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the blocks of a scene file and how the rewriter classifies them.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	doc, err := scene.ParseFile(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("scene blocks:\n%s", blockTable(doc, ctx.Bool("all")))
	return nil
}

func blockTable(doc *scene.Document, all bool) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Block", "Type", "Lines", "Class", "Material"})

	var lights, materials int
	for index, block := range doc.Blocks() {
		var class, name string
		switch {
		case rewrite.IsAreaLight(block):
			class = "area light"
			name, _ = rewrite.AssignedMaterial(block)
			lights++
		case rewrite.IsMaterialDefinition(block):
			class = "material"
			name = rewrite.MaterialDefinitionName(block)
			materials++
		default:
			if !all {
				continue
			}
		}

		typ, _ := block.Type()
		table.Append([]string{fmt.Sprintf("%d", index), typ, fmt.Sprintf("%d", block.Len()), class, name})
	}
	table.SetFooter([]string{fmt.Sprintf("%d blocks", len(doc.Blocks())), "", "", fmt.Sprintf("%d lights", lights), fmt.Sprintf("%d materials", materials)})

	table.Render()
	return buf.String()
}
