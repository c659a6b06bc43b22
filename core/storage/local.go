package storage

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const dirPerm = 0o755

// Config holds the local storage settings, loaded from the environment.
type Config struct {
	// Directory is the filesystem root all files are stored under.
	Directory string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	// PublicPrefix is prepended to relative paths when building public
	// URLs. It may be a plain path segment or a full base URL.
	PublicPrefix string `env:"UPLOAD_PUBLIC_PREFIX" envDefault:"uploads"`
}

// LocalStorage stores files on the local filesystem.
type LocalStorage struct {
	root         string
	publicPrefix string
}

var _ Storage = (*LocalStorage)(nil)

// New creates a local storage backend rooted at cfg.Directory. The root
// directory is created if it does not exist.
func New(cfg Config) (*LocalStorage, error) {
	if strings.TrimSpace(cfg.Directory) == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("directory is required"))
	}

	root, err := filepath.Abs(cfg.Directory)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, errors.Join(ErrFailedToCreateDir, err)
	}

	return &LocalStorage{
		root:         root,
		publicPrefix: strings.TrimSuffix(cfg.PublicPrefix, "/"),
	}, nil
}

// Root returns the absolute filesystem root files are stored under.
func (s *LocalStorage) Root() string {
	return s.root
}

// Save writes the uploaded file to a temporary file in the target directory
// and renames it into place, so a partially written file is never visible
// under its final name. Missing parent directories are created first.
func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, relPath string) (*File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := cleanRelPath(relPath)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenFile, err)
	}
	defer src.Close()

	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Join(ErrFailedToCreateDir, err)
	}

	// The temp file lives in the destination directory so the final rename
	// stays on one filesystem and remains atomic.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, errors.Join(ErrFailedToMoveFile, err)
	}
	tmpName := tmp.Name()

	size, err := io.Copy(tmp, src)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, dst)
	}
	if err != nil {
		os.Remove(tmpName)
		return nil, errors.Join(ErrFailedToMoveFile, err)
	}

	return &File{
		Filename:     path.Base(rel),
		Size:         size,
		MIMEType:     GetMIMEType(fh),
		Extension:    strings.ToLower(strings.TrimPrefix(path.Ext(rel), ".")),
		AbsolutePath: dst,
		RelativePath: rel,
	}, nil
}

// Delete removes a single stored file.
func (s *LocalStorage) Delete(ctx context.Context, relPath string) error {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return errors.Join(ErrFailedToDeleteFile, err)
	}
	return nil
}

// DeleteDir removes a directory and everything beneath it.
func (s *LocalStorage) DeleteDir(ctx context.Context, dir string) error {
	rel, err := cleanRelPath(dir)
	if err != nil {
		return err
	}

	target := filepath.Join(s.root, filepath.FromSlash(rel))
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrDirectoryNotFound
		}
		return errors.Join(ErrFailedToDeleteFile, err)
	}
	if !info.IsDir() {
		return ErrDirectoryNotFound
	}

	if err := os.RemoveAll(target); err != nil {
		return errors.Join(ErrFailedToDeleteFile, err)
	}
	return nil
}

// Exists reports whether a regular file is present at the given path.
func (s *LocalStorage) Exists(ctx context.Context, relPath string) bool {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}

// List returns the immediate entries of a directory, non-recursive.
// Pass an empty string to list the storage root.
func (s *LocalStorage) List(ctx context.Context, dir string) ([]Entry, error) {
	rel := ""
	if strings.TrimSpace(dir) != "" {
		var err error
		rel, err = cleanRelPath(dir)
		if err != nil {
			return nil, err
		}
	}

	target := filepath.Join(s.root, filepath.FromSlash(rel))
	dirEntries, err := os.ReadDir(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDirectoryNotFound
		}
		return nil, errors.Join(ErrFailedToListEntries, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry := Entry{
			Name:  de.Name(),
			Path:  path.Join(rel, de.Name()),
			IsDir: de.IsDir(),
		}
		if info, err := de.Info(); err == nil {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// URL returns the public path or URL for a stored file. When PublicPrefix
// is a full base URL the relative path is appended to it, otherwise the two
// are joined as path segments.
func (s *LocalStorage) URL(relPath string) string {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return ""
	}

	if s.publicPrefix == "" {
		return rel
	}
	if strings.Contains(s.publicPrefix, "://") {
		return s.publicPrefix + "/" + rel
	}
	return path.Join(s.publicPrefix, rel)
}

// cleanRelPath normalizes a storage path to a clean, slash-separated
// relative path and rejects anything that could escape the storage root.
func cleanRelPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(filepath.ToSlash(p), "/")
	if p == "" {
		return "", ErrInvalidPath
	}

	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
