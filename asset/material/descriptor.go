package material

import "github.com/giuliojiang/pbrt-v3-blender-exporter/types"

// A ColorChannel is either a literal color or a texture. A non-empty Texture
// overrides Color.
type ColorChannel struct {
	Color   types.Vec3
	Texture string
}

// IsTextured returns true if the channel is driven by a texture.
func (c ColorChannel) IsTextured() bool {
	return c.Texture != ""
}

// A ScalarChannel is either a literal value or a texture. A non-empty Texture
// overrides Value.
type ScalarChannel struct {
	Value   float64
	Texture string
}

// IsTextured returns true if the channel is driven by a texture.
func (c ScalarChannel) IsTextured() bool {
	return c.Texture != ""
}

// Descriptor holds the material and emission settings configured for a named
// material. Only the channels relevant to Kind are used when generating the
// material definition.
type Descriptor struct {
	Name string

	Kind Kind

	// The kind name as it appeared in the material library. Used for
	// reporting unsupported kinds.
	RawKind string

	// Matte and plastic diffuse color.
	Diffuse ColorChannel

	// Plastic specular color and roughness.
	Specular  ColorChannel
	Roughness ScalarChannel

	// Mirror reflectivity.
	Reflectivity ColorChannel

	// Mix material slots and mix amount.
	MixFirst  string
	MixSecond string
	Amount    ColorChannel

	// Emission settings for area lights.
	EmitIntensity float64
	EmitColor     types.Vec3
}

// NewDescriptor returns a descriptor of the given kind with every channel set
// to its default value.
func NewDescriptor(name string, kind Kind) *Descriptor {
	return &Descriptor{
		Name:         name,
		Kind:         kind,
		RawKind:      kind.String(),
		Diffuse:      ColorChannel{Color: DefaultDiffuse},
		Specular:     ColorChannel{Color: DefaultSpecular},
		Roughness:    ScalarChannel{Value: DefaultRoughness},
		Reflectivity: ColorChannel{Color: DefaultReflectivity},
		Amount:       ColorChannel{Color: DefaultMixAmount},
		EmitColor:    DefaultEmitColor,
	}
}

// Radiance returns the emitted radiance: the emission color scaled by the
// emission intensity.
func (d *Descriptor) Radiance() types.Vec3 {
	return d.EmitColor.Mul(d.EmitIntensity)
}

// Fallback returns the descriptor used for material definitions that have no
// entry in the material library: a matte surface with a bright magenta color
// so that missing materials stand out in the render.
func Fallback(name string) *Descriptor {
	d := NewDescriptor(name, KindMatte)
	d.Diffuse = ColorChannel{Color: MissingColor}
	return d
}
