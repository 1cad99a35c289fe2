package texture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/log"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene"
	"github.com/h2non/filetype"
)

// ErrCopyFailed is returned when a texture source cannot be copied into the
// output directory.
var ErrCopyFailed = errors.New("texture: copy failed")

// Class is the pbrt texture class used in a Texture declaration.
type Class string

const (
	ColorTexture Class = "color"
	FloatTexture Class = "float"
)

// An Entry describes a texture copied into the output directory.
type Entry struct {
	Name   string
	Source string
	Class  Class
	Bytes  int64
}

// Registry copies texture sources into an output directory under generated
// names. The name counter belongs to the registry and is incremented once per
// injected texture; names are never reused.
type Registry struct {
	logger log.Logger

	mutex sync.Mutex

	// Last used counter value. The first texture is tex_1.
	counter int

	outDir     string
	projectDir string

	entries []Entry
}

// NewRegistry creates a registry that writes textures to outDir and resolves
// relative texture sources against projectDir.
func NewRegistry(outDir, projectDir string) *Registry {
	return &Registry{
		logger:     log.New("texture registry"),
		outDir:     outDir,
		projectDir: projectDir,
		entries:    make([]Entry, 0),
	}
}

// Entries returns the textures injected so far, in injection order.
func (r *Registry) Entries() []Entry {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]Entry(nil), r.entries...)
}

// Return the next texture name for the given extension.
func (r *Registry) nextName(ext string) string {
	r.counter++
	return fmt.Sprintf("tex_%d%s", r.counter, ext)
}

// Inject copies the texture at source into the output directory under a newly
// generated name and prepends a Texture declaration for it to block. It
// returns the generated name.
func (r *Registry) Inject(source string, class Class, block *scene.Block) (string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	res, err := asset.NewResource(source, r.projectDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrCopyFailed, source, err)
	}
	defer res.Close()

	name := r.nextName(res.Ext())
	destPath := filepath.Join(r.outDir, name)
	written, err := copyTo(res, destPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s -> %s: %s", ErrCopyFailed, source, destPath, err)
	}

	r.checkImage(destPath)
	r.logger.Infof(`copied texture "%s" to "%s" (%d bytes)`, res.Path(), destPath, written)

	block.Prepend(0, Declaration(name, class))
	r.entries = append(r.entries, Entry{Name: name, Source: res.Path(), Class: class, Bytes: written})
	return name, nil
}

// Declaration returns the Texture statement for an imagemap texture.
func Declaration(name string, class Class) string {
	return fmt.Sprintf(`%s "%s" "%s" "imagemap" "string filename" "%s"`, scene.Texture, name, class, name)
}

func copyTo(src io.Reader, destPath string) (int64, error) {
	f, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		return 0, err
	}
	return written, nil
}

// Log a warning if the copied file does not look like an image the renderer
// can load.
func (r *Registry) checkImage(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	// filetype only needs the file header
	head := make([]byte, 261)
	n, _ := io.ReadFull(f, head)
	if n == 0 {
		r.logger.Warningf(`texture "%s" is empty`, path)
		return
	}
	if !filetype.IsImage(head[:n]) {
		r.logger.Warningf(`texture "%s" does not look like an image`, path)
	}
}
