package static

import (
	"io/fs"
	"net/http"

	"github.com/dmitrymomot/imgstore/core/handler"
)

// fsConfig holds configuration for fs.FS serving.
type fsConfig struct {
	fs          fs.FS
	stripPrefix string
	subPath     string
}

// FSOption configures fs.FS serving behavior.
type FSOption func(*fsConfig)

// WithFSStripPrefix removes the given prefix from the URL path before the
// file lookup, for mounting embedded files under a route prefix.
func WithFSStripPrefix(prefix string) FSOption {
	return func(c *fsConfig) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves files from a subdirectory within the fs.FS. Useful with
// embed.FS where the embed directive keeps the directory name in the path.
func WithSubFS(path string) FSOption {
	return func(c *fsConfig) {
		c.subPath = path
	}
}

// FS creates a handler that serves files from an fs.FS, typically an
// embed.FS compiled into the binary. Directory listing is disabled and
// index.html is served for directories that have one. Panics at startup
// when the filesystem or the configured sub-path is not accessible.
func FS[C handler.Context](fsys fs.FS, opts ...FSOption) handler.HandlerFunc[C] {
	config := &fsConfig{
		fs: fsys,
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.subPath != "" {
		sub, err := fs.Sub(fsys, config.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + config.subPath + "': " + err.Error())
		}
		config.fs = sub
	}

	if _, err := config.fs.Open("."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	fileServer := http.FileServer(neuteredFileSystem{fs: http.FS(config.fs)})
	if config.stripPrefix != "" {
		fileServer = http.StripPrefix(config.stripPrefix, fileServer)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			fileServer.ServeHTTP(w, r)
			return nil
		}
	}
}
