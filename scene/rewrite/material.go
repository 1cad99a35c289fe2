package rewrite

import (
	"fmt"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset/material"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset/texture"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/types"
)

// materialWriter regenerates the parameter list of a MakeNamedMaterial block.
type materialWriter struct {
	block    *scene.Block
	textures TextureInjector
}

func (w *materialWriter) write(desc *material.Descriptor) error {
	w.block.ClearBody()

	var err error
	switch desc.Kind {
	case material.KindMatte:
		w.param("string type", `"matte"`)
		err = w.color("Kd", desc.Diffuse)
	case material.KindPlastic:
		w.param("string type", `"plastic"`)
		if err = w.color("Kd", desc.Diffuse); err != nil {
			return err
		}
		if err = w.color("Ks", desc.Specular); err != nil {
			return err
		}
		if err = w.scalar("roughness", desc.Roughness); err != nil {
			return err
		}
		w.param("bool remaproughness", `"true"`)
	case material.KindMirror:
		w.param("string type", `"mirror"`)
		err = w.color("Kr", desc.Reflectivity)
	case material.KindMix:
		w.param("string type", `"mix"`)
		w.param("string namedmaterial1", quote(desc.MixFirst))
		w.param("string namedmaterial2", quote(desc.MixSecond))
		err = w.color("amount", desc.Amount)
	default:
		return fmt.Errorf("%w %q", ErrUnknownMaterialKind, desc.RawKind)
	}

	return err
}

// Append a `"<decl>" <value>` parameter line.
func (w *materialWriter) param(decl, value string) {
	w.block.Append(materialParamLevel, fmt.Sprintf(`"%s" %s`, decl, value))
}

// Append a color parameter, injecting its texture if one is set.
func (w *materialWriter) color(name string, c material.ColorChannel) error {
	if c.IsTextured() {
		return w.texture(name, c.Texture, texture.ColorTexture)
	}
	w.param("rgb "+name, colorValue(c.Color))
	return nil
}

// Append a float parameter, injecting its texture if one is set.
func (w *materialWriter) scalar(name string, c material.ScalarChannel) error {
	if c.IsTextured() {
		return w.texture(name, c.Texture, texture.FloatTexture)
	}
	w.param("float "+name, "["+types.FormatFloat(c.Value)+"]")
	return nil
}

func (w *materialWriter) texture(name, source string, class texture.Class) error {
	texName, err := w.textures.Inject(source, class, w.block)
	if err != nil {
		return err
	}
	w.param("texture "+name, quote(texName))
	return nil
}

// Wrap a name in double quotes. Scene files have no escape sequences so the
// name is written verbatim.
func quote(name string) string {
	return `"` + name + `"`
}
