package storage

import (
	"context"
	"mime/multipart"
)

// Storage is the file storage contract shared by the local filesystem
// backend and remote implementations.
type Storage interface {
	// Save stores the uploaded file under the given relative path and
	// returns metadata about the stored file. The path includes the target
	// filename, e.g. "avatars/1724572800_a1b2c3d4e5f60718.png".
	Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error)

	// Delete removes a single stored file.
	Delete(ctx context.Context, path string) error

	// DeleteDir removes a directory and everything beneath it.
	DeleteDir(ctx context.Context, dir string) error

	// Exists reports whether a file is present at the given path.
	Exists(ctx context.Context, path string) bool

	// List returns the immediate entries of a directory, non-recursive.
	List(ctx context.Context, dir string) ([]Entry, error)

	// URL returns the public URL or path clients use to fetch the file.
	URL(path string) string
}

// File describes a stored file.
type File struct {
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	MIMEType     string `json:"mime_type"`
	Extension    string `json:"extension"`
	AbsolutePath string `json:"absolute_path,omitempty"`
	RelativePath string `json:"relative_path"`
}

// Entry describes a single item in a directory listing.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}
