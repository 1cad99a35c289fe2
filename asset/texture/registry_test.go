package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene"
)

func mockImage(t *testing.T, path string) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestInject(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "wood.png")
	payload := mockImage(t, srcPath)

	block := scene.NewBlock(`MakeNamedMaterial "Wall"`)
	r := NewRegistry(outDir, "")

	name, err := r.Inject(srcPath, ColorTexture, block)
	if err != nil {
		t.Fatal(err)
	}
	if name != "tex_1.png" {
		t.Fatalf("expected first texture to be named tex_1.png; got %s", name)
	}

	data, err := ioutil.ReadFile(filepath.Join(outDir, name))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatal("expected texture to be copied byte-for-byte")
	}

	exp := []string{
		`Texture "tex_1.png" "color" "imagemap" "string filename" "tex_1.png"`,
		`MakeNamedMaterial "Wall"`,
	}
	if got := block.Lines(); len(got) != 2 || got[0] != exp[0] || got[1] != exp[1] {
		t.Fatalf("expected block lines to be:\n%v\ngot:\n%v", exp, got)
	}

	entries := r.Entries()
	if len(entries) != 1 || entries[0].Name != name || entries[0].Bytes != int64(len(payload)) {
		t.Fatalf("unexpected registry entries: %+v", entries)
	}
}

func TestCounterMonotonicity(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	mockImage(t, filepath.Join(srcDir, "a.png"))
	mockImage(t, filepath.Join(srcDir, "b.jpg"))

	blocks := []*scene.Block{
		scene.NewBlock(`MakeNamedMaterial "A"`),
		scene.NewBlock(`MakeNamedMaterial "B"`),
	}

	// Sources are relative to the project dir
	r := NewRegistry(outDir, srcDir)
	sources := []string{"a.png", "//b.jpg", "a.png", "b.jpg", "//a.png"}
	for i, src := range sources {
		name, err := r.Inject(src, FloatTexture, blocks[i%2])
		if err != nil {
			t.Fatal(err)
		}

		exp := fmt.Sprintf("tex_%d%s", i+1, filepath.Ext(src))
		if name != exp {
			t.Fatalf("expected texture %d to be named %s; got %s", i, exp, name)
		}
		if _, err = os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatal(err)
		}
	}

	// Declarations are prepended so the latest one comes first
	if got := blocks[0].Lines()[0]; !strings.HasPrefix(got, `Texture "tex_5.png" "float"`) {
		t.Fatalf("expected latest declaration first; got %q", got)
	}
	if blocks[0].Len() != 4 || blocks[1].Len() != 3 {
		t.Fatalf("expected 3+1 and 2+1 lines; got %d and %d", blocks[0].Len(), blocks[1].Len())
	}
}

func TestInjectRemote(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/texture.png" {
			png.Encode(w, image.NewRGBA64(image.Rect(0, 0, 1, 1)))
		} else {
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	outDir := t.TempDir()
	r := NewRegistry(outDir, "")
	name, err := r.Inject(server.URL+"/texture.png", ColorTexture, scene.NewBlock("MakeNamedMaterial \"A\""))
	if err != nil {
		t.Fatal(err)
	}
	if name != "tex_1.png" {
		t.Fatalf("expected remote texture to keep its extension; got %s", name)
	}
}

func TestInjectErrors(t *testing.T) {
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "wood.png")
	mockImage(t, srcPath)

	block := scene.NewBlock(`MakeNamedMaterial "Wall"`)

	// Missing source
	r := NewRegistry(t.TempDir(), "")
	_, err := r.Inject(filepath.Join(srcDir, "missing.png"), ColorTexture, block)
	if !errors.Is(err, ErrCopyFailed) {
		t.Fatalf("expected to get ErrCopyFailed; got %v", err)
	}

	// Unwritable destination
	r = NewRegistry(filepath.Join(srcDir, "no-such-dir"), "")
	_, err = r.Inject(srcPath, ColorTexture, block)
	if !errors.Is(err, ErrCopyFailed) {
		t.Fatalf("expected to get ErrCopyFailed; got %v", err)
	}

	if block.Len() != 1 {
		t.Fatalf("expected failed injections to leave the block untouched; got %v", block.Lines())
	}
	if len(r.Entries()) != 0 {
		t.Fatalf("expected no registry entries; got %+v", r.Entries())
	}
}
