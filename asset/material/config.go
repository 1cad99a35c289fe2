package material

import (
	"fmt"
	"io"
	"sort"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// materialSpec is the on-disk representation of a descriptor in YAML and TOML
// libraries. Unset fields fall back to the defaults of NewDescriptor.
type materialSpec struct {
	Type string `yaml:"type" toml:"type"`

	Diffuse        []float64 `yaml:"diffuse" toml:"diffuse"`
	DiffuseTexture string    `yaml:"diffuse_texture" toml:"diffuse_texture"`

	Specular        []float64 `yaml:"specular" toml:"specular"`
	SpecularTexture string    `yaml:"specular_texture" toml:"specular_texture"`

	Roughness        *float64 `yaml:"roughness" toml:"roughness"`
	RoughnessTexture string   `yaml:"roughness_texture" toml:"roughness_texture"`

	Reflectivity        []float64 `yaml:"reflectivity" toml:"reflectivity"`
	ReflectivityTexture string    `yaml:"reflectivity_texture" toml:"reflectivity_texture"`

	First         string    `yaml:"first" toml:"first"`
	Second        string    `yaml:"second" toml:"second"`
	Amount        []float64 `yaml:"amount" toml:"amount"`
	AmountTexture string    `yaml:"amount_texture" toml:"amount_texture"`

	Emit     float64   `yaml:"emit" toml:"emit"`
	Emission []float64 `yaml:"emission" toml:"emission"`
}

type librarySpec struct {
	Materials map[string]materialSpec `yaml:"materials" toml:"materials"`
}

func decodeYAML(r io.Reader) (*Library, error) {
	var spec librarySpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil && err != io.EOF {
		return nil, fmt.Errorf("material: could not decode yaml library: %s", err)
	}
	return spec.library()
}

func decodeTOML(r io.Reader) (*Library, error) {
	var spec librarySpec
	if err := toml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("material: could not decode toml library: %s", err)
	}
	return spec.library()
}

// Convert the decoded specs into a library. Materials are processed in name
// order so that errors are reported deterministically.
func (s *librarySpec) library() (*Library, error) {
	names := make([]string, 0, len(s.Materials))
	for name := range s.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	lib := NewLibrary()
	for _, name := range names {
		d, err := s.Materials[name].descriptor(name)
		if err != nil {
			return nil, fmt.Errorf("material %q: %s", name, err)
		}
		lib.Add(d)
	}
	return lib, nil
}

func (s materialSpec) descriptor(name string) (*Descriptor, error) {
	kindName := s.Type
	if kindName == "" {
		kindName = KindMatte.String()
	}

	d := NewDescriptor(name, KindFromName(kindName))
	d.RawKind = kindName

	var err error
	colors := []struct {
		field  string
		values []float64
		target *types.Vec3
	}{
		{"diffuse", s.Diffuse, &d.Diffuse.Color},
		{"specular", s.Specular, &d.Specular.Color},
		{"reflectivity", s.Reflectivity, &d.Reflectivity.Color},
		{"amount", s.Amount, &d.Amount.Color},
		{"emission", s.Emission, &d.EmitColor},
	}
	for _, c := range colors {
		if c.values == nil {
			continue
		}
		if *c.target, err = toVec3(c.field, c.values); err != nil {
			return nil, err
		}
	}

	d.Diffuse.Texture = s.DiffuseTexture
	d.Specular.Texture = s.SpecularTexture
	d.Reflectivity.Texture = s.ReflectivityTexture
	d.Amount.Texture = s.AmountTexture
	d.Roughness.Texture = s.RoughnessTexture
	if s.Roughness != nil {
		d.Roughness.Value = *s.Roughness
	}

	d.MixFirst = s.First
	d.MixSecond = s.Second
	d.EmitIntensity = s.Emit

	return d, nil
}

func toVec3(field string, values []float64) (types.Vec3, error) {
	if len(values) != 3 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 components; got %d`, field, len(values))
	}
	return types.Vec3{values[0], values[1], values[2]}, nil
}
