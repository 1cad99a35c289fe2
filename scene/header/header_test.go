package header

import (
	"bytes"
	"io/ioutil"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssemble(t *testing.T) {
	s := DefaultSettings()
	s.ResolutionX = 800
	s.ResolutionY = 600
	s.ResolutionPercentage = 50
	s.Integrator = "IILE"
	s.Sampler = "SOBOL"
	s.PixelSamples = 16
	s.Camera = Camera{
		Rotation: []float64{math.Pi / 2, 1, 0.5, 0},
		Location: []float64{1, 2, 3},
		Angle:    math.Pi / 2,
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Assemble(&buf, s, strings.NewReader("AttributeBegin\n    Shape \"sphere\"\nAttributeEnd")); err != nil {
		t.Fatal(err)
	}

	exp := strings.Join([]string{
		`Film "image" "integer xresolution" 400 "integer yresolution" 300`,
		`Integrator "iispt"`,
		`Sampler "sobol" "integer pixelsamples" 16`,
		`Scale -1 1 1`,
		`Rotate 90.0 1.0 -0.5 0.0`,
		`Translate 1.0 -2.0 3.0`,
		`Camera "perspective" "float fov" [45.0]`,
		`WorldBegin`,
		`AttributeBegin`,
		`    Shape "sphere"`,
		`AttributeEnd`,
		`WorldEnd`,
		``,
	}, "\n")
	if buf.String() != exp {
		t.Fatalf("expected assembled scene to be:\n%s\ngot:\n%s", exp, buf.String())
	}
}

func TestValidate(t *testing.T) {
	specs := []struct {
		mutate   func(*Settings)
		expError string
	}{
		{func(s *Settings) { s.Integrator = "bdpt" }, `header: unrecognized integrator "bdpt"`},
		{func(s *Settings) { s.Sampler = "stratified" }, `header: unrecognized sampler "stratified"`},
		{func(s *Settings) { s.ResolutionX = 0 }, `header: invalid resolution 0x1080 at 100%`},
		{func(s *Settings) { s.PixelSamples = 0 }, `header: pixel samples must be at least 1; got 0`},
		{func(s *Settings) { s.Camera.Location = []float64{1} }, `header: camera location expects 3 components; got 1`},
	}

	for specIndex, spec := range specs {
		s := DefaultSettings()
		spec.mutate(s)
		if err := s.Validate(); err == nil || err.Error() != spec.expError {
			t.Errorf("[spec %d] expected error %q; got %v", specIndex, spec.expError, err)
		}
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"render.yaml": "resolution_x: 640\nresolution_y: 480\nintegrator: PATH\nsampler: halton\npixel_samples: 8\n",
		"render.toml": "resolution_x = 640\nresolution_y = 480\nintegrator = \"path\"\nsampler = \"halton\"\npixel_samples = 8\n",
	}

	for name, payload := range files {
		path := filepath.Join(dir, name)
		if err := ioutil.WriteFile(path, []byte(payload), 0644); err != nil {
			t.Fatal(err)
		}

		s, err := LoadSettings(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if w, h := s.FilmSize(); w != 640 || h != 480 {
			t.Fatalf("%s: expected film size 640x480; got %dx%d", name, w, h)
		}
		if s.Integrator != "path" || s.Sampler != "halton" || s.PixelSamples != 8 {
			t.Fatalf("%s: unexpected settings %+v", name, s)
		}
		if len(s.Camera.Rotation) != 4 {
			t.Fatalf("%s: expected default camera rotation to be kept", name)
		}
	}

	path := filepath.Join(dir, "render.ini")
	if err := ioutil.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("expected an error for an unsupported settings format")
	}
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	bodyPath := filepath.Join(dir, "exp2.pbrt")
	outPath := filepath.Join(dir, "scene.pbrt")
	if err := ioutil.WriteFile(bodyPath, []byte("AttributeBegin\nAttributeEnd\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := AssembleFile(DefaultSettings(), bodyPath, outPath); err != nil {
		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "WorldBegin\nAttributeBegin\nAttributeEnd\nWorldEnd\n") {
		t.Fatalf("unexpected assembled scene:\n%s", string(data))
	}

	if err = AssembleFile(DefaultSettings(), filepath.Join(dir, "missing.pbrt"), outPath); err == nil {
		t.Fatal("expected an error for a missing body file")
	}
}
