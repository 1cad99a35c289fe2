package rewrite

import (
	"fmt"
	"time"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset/material"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset/texture"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/log"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/types"
)

const (
	// Parameter carrying the emitted radiance of an area light.
	radianceParam = `"rgb L"`

	// Level of material definition parameters.
	materialParamLevel = 1
)

// The exporter nests area light parameters at level 3. Scenes converted with
// pbrt --toply place them directly below the AreaLightSource statement at
// level 2; that level is only used when nothing matches at level 3.
var radianceLevels = []int{3, 2}

// TextureInjector copies a texture source next to the scene and declares it
// in block, returning the generated texture name.
type TextureInjector interface {
	Inject(source string, class texture.Class, block *scene.Block) (string, error)
}

// A Change describes a block modified by the rewriter.
type Change struct {
	Index int

	// Either "light" or "material".
	Target string

	Name   string
	Detail string

	// Set if the material definition was generated from the fallback
	// descriptor.
	Fallback bool
}

// Rewriter injects material and light settings into an exported scene.
type Rewriter struct {
	logger   log.Logger
	registry material.Registry
	textures TextureInjector
}

// New creates a rewriter that resolves names through registry and injects
// textures through textures.
func New(registry material.Registry, textures TextureInjector) *Rewriter {
	return &Rewriter{
		logger:   log.New("rewriter"),
		registry: registry,
		textures: textures,
	}
}

// IsAreaLight returns true for attribute groups declaring an area light.
func IsAreaLight(b *scene.Block) bool {
	typ, _ := b.Type()
	return typ == scene.AttributeBegin && b.Contains(1, scene.AreaLightSource)
}

// AssignedMaterial returns the name of the material assigned inside an
// attribute group.
func AssignedMaterial(b *scene.Block) (string, bool) {
	if typ, _ := b.Type(); typ != scene.AttributeBegin {
		return "", false
	}

	line, found := b.Find(1, scene.NamedMaterial)
	if !found {
		return "", false
	}
	return scene.StatementArgs(line), true
}

// IsMaterialDefinition returns true for MakeNamedMaterial blocks.
func IsMaterialDefinition(b *scene.Block) bool {
	typ, _ := b.Type()
	return typ == scene.MakeNamedMaterial
}

// MaterialDefinitionName returns the name declared by a MakeNamedMaterial
// header. Names may contain spaces.
func MaterialDefinitionName(b *scene.Block) string {
	return scene.StatementArgs(b.Header())
}

// Rewrite processes every block of doc in order. Blocks are modified in place;
// if an error is returned the document must be discarded.
func (rw *Rewriter) Rewrite(doc *scene.Document) ([]Change, error) {
	start := time.Now()
	changes := make([]Change, 0)

	for index, block := range doc.Blocks() {
		var (
			change *Change
			err    error
		)

		switch {
		case IsAreaLight(block):
			change, err = rw.rewriteEmission(index, block)
		case IsMaterialDefinition(block):
			change, err = rw.rewriteMaterial(index, block)
		default:
			continue
		}

		if err != nil {
			return nil, err
		}
		if change != nil {
			changes = append(changes, *change)
		}
	}

	rw.logger.Infof("rewrote %d blocks in %d ms", len(changes), time.Since(start).Nanoseconds()/1e6)
	return changes, nil
}

// RewriteFile parses the scene at inPath, rewrites it and writes the result to
// outPath. Nothing is written if the rewrite fails.
func (rw *Rewriter) RewriteFile(inPath, outPath string) ([]Change, error) {
	doc, err := scene.ParseFile(inPath)
	if err != nil {
		return nil, err
	}

	changes, err := rw.Rewrite(doc)
	if err != nil {
		return nil, err
	}

	if err = doc.WriteFile(outPath); err != nil {
		return nil, err
	}
	return changes, nil
}

// Set the radiance of an area light to the emission of its assigned material.
func (rw *Rewriter) rewriteEmission(index int, block *scene.Block) (*Change, error) {
	matName, found := AssignedMaterial(block)
	if !found {
		rw.logger.Warningf("block %d: area light without an assigned material; skipping", index)
		return nil, nil
	}

	desc, found := rw.registry.Lookup(matName)
	if !found {
		return nil, &BlockError{Index: index, Header: block.Header(), Name: matName, Err: ErrMissingMaterial}
	}

	radiance := desc.Radiance()
	line := fmt.Sprintf("%s %s", radianceParam, colorValue(radiance))
	for _, level := range radianceLevels {
		if block.Replace(level, radianceParam, line) > 0 {
			rw.logger.Debugf("block %d: set emission of %q to [ %s ]", index, matName, radiance)
			return &Change{Index: index, Target: "light", Name: matName, Detail: "L " + colorValue(radiance)}, nil
		}
	}

	rw.logger.Warningf("block %d: area light for %q has no %s parameter", index, matName, radianceParam)
	return nil, nil
}

// Replace the body of a material definition with the parameters of its
// descriptor.
func (rw *Rewriter) rewriteMaterial(index int, block *scene.Block) (*Change, error) {
	matName := MaterialDefinitionName(block)
	desc, found := rw.registry.Lookup(matName)
	fallback := !found
	if fallback {
		rw.logger.Warningf("block %d: material %q not found in library; using fallback", index, matName)
		desc = material.Fallback(matName)
	}

	header := block.Header()
	w := &materialWriter{block: block, textures: rw.textures}
	if err := w.write(desc); err != nil {
		return nil, &BlockError{Index: index, Header: header, Name: matName, Err: err}
	}

	rw.logger.Debugf("block %d: generated %s material %q", index, desc.Kind, matName)
	return &Change{Index: index, Target: "material", Name: matName, Detail: desc.Kind.String(), Fallback: fallback}, nil
}

// Format a color parameter value.
func colorValue(c types.Vec3) string {
	return "[ " + c.String() + " ]"
}
