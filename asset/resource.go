package asset

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// The Resource class wraps a streamable file or remote Resource.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	if !r.IsRemote() {
		return r.url.Path
	}
	return r.url.String()
}

// Returns the file extension of this resource (including the leading dot) or
// an empty string if the resource path has no extension.
func (r *Resource) Ext() string {
	if r.IsRemote() {
		return path.Ext(r.url.Path)
	}
	return filepath.Ext(r.url.Path)
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// ResolvePath converts a texture path as stored by the exporter into a local
// path. Paths starting with "//" are relative to projectDir, paths starting
// with "~" are relative to the user's home directory and other relative paths
// are resolved against projectDir as well.
func ResolvePath(pathToResource, projectDir string) (string, error) {
	switch {
	case strings.HasPrefix(pathToResource, "//"):
		return filepath.Join(projectDir, filepath.FromSlash(pathToResource[2:])), nil
	case strings.HasPrefix(pathToResource, "~"):
		expanded, err := homedir.Expand(pathToResource)
		if err != nil {
			return "", fmt.Errorf("resource: could not expand '%s': %s", pathToResource, err)
		}
		return expanded, nil
	case !filepath.IsAbs(pathToResource) && projectDir != "":
		return filepath.Join(projectDir, pathToResource), nil
	}
	return pathToResource, nil
}

// Create a new Resource data stream. Local paths are resolved relative to
// projectDir using ResolvePath.
//
// This function can handle http/https URLs by delegating to the net/http package.
// The caller must make sure to close the returned io.ReadCloser to prevent mem leaks.
func NewResource(pathToResource string, projectDir string) (*Resource, error) {
	if pathToResource == "" {
		return nil, fmt.Errorf("resource: empty path")
	}

	// Windows style separators are converted before checking for a scheme
	normalized := strings.Replace(pathToResource, `\`, `/`, -1)
	if strings.HasPrefix(normalized, "http://") || strings.HasPrefix(normalized, "https://") {
		return newRemoteResource(normalized)
	}
	if idx := strings.Index(normalized, "://"); idx > 0 {
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", normalized[:idx])
	}

	localPath, err := ResolvePath(pathToResource, projectDir)
	if err != nil {
		return nil, err
	}

	reader, err := os.Open(filepath.Clean(localPath))
	if err != nil {
		return nil, err
	}

	return &Resource{
		ReadCloser: reader,
		url:        &url.URL{Path: localPath},
	}, nil
}

func newRemoteResource(rawURL string) (*Resource, error) {
	url, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	resp, err := http.Get(url.String())
	if err != nil {
		return nil, fmt.Errorf("resource: could not fetch '%s': %s", url.String(), err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("resource: could not fetch '%s': status %d", url.String(), resp.StatusCode)
	}

	return &Resource{
		ReadCloser: resp.Body,
		url:        url,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	return &Resource{
		ReadCloser: ioutil.NopCloser(source),
		url:        &url.URL{Path: name},
	}
}
