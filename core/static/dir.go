package static

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/imgstore/core/handler"
)

// dirConfig holds configuration for directory serving.
type dirConfig struct {
	root            string
	stripPrefix     string
	notFoundHandler func(w http.ResponseWriter, r *http.Request) error
}

// DirOption configures directory serving behavior.
type DirOption func(*dirConfig)

// WithStripPrefix removes the given prefix from the URL path before the
// file lookup. Needed when mounting a directory under a route prefix,
// e.g. serving the upload root at "/uploads/*".
func WithStripPrefix(prefix string) DirOption {
	return func(c *dirConfig) {
		c.stripPrefix = prefix
	}
}

// WithNotFound sets a custom handler for missing files.
func WithNotFound(h func(w http.ResponseWriter, r *http.Request) error) DirOption {
	return func(c *dirConfig) {
		c.notFoundHandler = h
	}
}

// Dir creates a handler that serves files from a directory. Directory
// listing is disabled. Panics at startup when the directory does not
// exist, so a misconfigured deployment fails before it accepts traffic.
func Dir[C handler.Context](root string, opts ...DirOption) handler.HandlerFunc[C] {
	config := &dirConfig{
		root: filepath.Clean(root),
	}
	for _, opt := range opts {
		opt(config)
	}

	info, err := os.Stat(config.root)
	if err != nil {
		if os.IsNotExist(err) {
			panic("static.Dir: directory does not exist: " + config.root)
		}
		panic("static.Dir: error accessing directory: " + err.Error())
	}
	if !info.IsDir() {
		panic("static.Dir: path is not a directory: " + config.root)
	}

	fileServer := http.FileServer(neuteredFileSystem{fs: http.Dir(config.root)})
	if config.stripPrefix != "" {
		fileServer = http.StripPrefix(config.stripPrefix, fileServer)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			if config.notFoundHandler != nil {
				cleanPath := path.Clean(r.URL.Path)
				fullPath := filepath.Join(config.root, strings.TrimPrefix(cleanPath, config.stripPrefix))
				if _, err := os.Stat(fullPath); os.IsNotExist(err) {
					return config.notFoundHandler(w, r)
				}
			}

			fileServer.ServeHTTP(w, r)
			return nil
		}
	}
}
