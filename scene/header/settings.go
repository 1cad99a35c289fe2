package header

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// Camera holds the exported camera transformation. Rotation is an axis-angle
// rotation: the angle in radians followed by the axis.
type Camera struct {
	Rotation []float64 `yaml:"rotation" toml:"rotation"`
	Location []float64 `yaml:"location" toml:"location"`

	// Full field of view angle in radians.
	Angle float64 `yaml:"angle" toml:"angle"`
}

// Settings controls the scene header written in front of the exported world.
type Settings struct {
	ResolutionX int `yaml:"resolution_x" toml:"resolution_x"`
	ResolutionY int `yaml:"resolution_y" toml:"resolution_y"`

	// Resolution scale in percent.
	ResolutionPercentage int `yaml:"resolution_percentage" toml:"resolution_percentage"`

	Integrator   string `yaml:"integrator" toml:"integrator"`
	Sampler      string `yaml:"sampler" toml:"sampler"`
	PixelSamples int    `yaml:"pixel_samples" toml:"pixel_samples"`

	Camera Camera `yaml:"camera" toml:"camera"`
}

// DefaultSettings returns the settings used for keys missing from a settings
// file.
func DefaultSettings() *Settings {
	return &Settings{
		ResolutionX:          1920,
		ResolutionY:          1080,
		ResolutionPercentage: 100,
		Integrator:           "path",
		Sampler:              "random",
		PixelSamples:         4,
		Camera: Camera{
			Rotation: []float64{0, 1, 0, 0},
			Location: []float64{0, 0, 0},
			Angle:    0.8575560450553894,
		},
	}
}

// LoadSettings reads settings from a YAML or TOML file.
func LoadSettings(filename string) (*Settings, error) {
	res, err := asset.NewResource(filename, "")
	if err != nil {
		return nil, err
	}
	defer res.Close()

	s := DefaultSettings()
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(res).Decode(s)
	case ".toml":
		err = toml.NewDecoder(res).Decode(s)
	default:
		return nil, fmt.Errorf("header: unsupported settings format %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("header: could not decode %s: %s", filename, err)
	}

	if err = s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings and normalizes integrator and sampler names.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Integrator) {
	case "path":
		s.Integrator = "path"
	case "iile", "iispt":
		s.Integrator = "iispt"
	default:
		return fmt.Errorf("header: unrecognized integrator %q", s.Integrator)
	}

	switch strings.ToLower(s.Sampler) {
	case "random", "sobol", "halton":
		s.Sampler = strings.ToLower(s.Sampler)
	default:
		return fmt.Errorf("header: unrecognized sampler %q", s.Sampler)
	}

	if s.ResolutionX <= 0 || s.ResolutionY <= 0 || s.ResolutionPercentage <= 0 {
		return fmt.Errorf("header: invalid resolution %dx%d at %d%%", s.ResolutionX, s.ResolutionY, s.ResolutionPercentage)
	}
	if len(s.Camera.Rotation) != 4 {
		return fmt.Errorf("header: camera rotation expects 4 components (angle, x, y, z); got %d", len(s.Camera.Rotation))
	}
	if len(s.Camera.Location) != 3 {
		return fmt.Errorf("header: camera location expects 3 components; got %d", len(s.Camera.Location))
	}
	if s.PixelSamples < 1 {
		return fmt.Errorf("header: pixel samples must be at least 1; got %d", s.PixelSamples)
	}
	return nil
}

// FilmSize returns the film resolution after applying the resolution scale.
func (s *Settings) FilmSize() (int, int) {
	scale := float64(s.ResolutionPercentage) / 100.0
	return int(float64(s.ResolutionX) * scale), int(float64(s.ResolutionY) * scale)
}
