package upload

import (
	"context"
	"log/slog"
	"mime/multipart"
	"path"

	"github.com/dmitrymomot/imgstore/core/logger"
	"github.com/dmitrymomot/imgstore/core/storage"
)

// Service accepts image uploads, validates them and hands them to the
// configured storage backend under a generated filename.
type Service struct {
	storage     storage.Storage
	log         *slog.Logger
	maxFileSize int64
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for upload events. Uploads are not logged
// when no logger is provided.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxFileSize overrides the default 5MB per-file limit.
// Non-positive values are ignored.
func WithMaxFileSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// NewService creates an upload service backed by the given storage.
func NewService(store storage.Storage, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrNilStorage
	}

	s := &Service{
		storage:     store,
		log:         slog.New(slog.DiscardHandler),
		maxFileSize: MaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Request carries one upload through the service.
type Request struct {
	// Path is the client-supplied destination directory, relative to the
	// upload root.
	Path string
	// File is the uploaded image.
	File *multipart.FileHeader
	// DeclaredSizeLimit is the raw MAX_FILE_SIZE form value, when present.
	DeclaredSizeLimit string
}

// Result describes a stored image.
type Result struct {
	// FilePath is the public path of the stored file, e.g.
	// "uploads/avatars/1724572800_a1b2c3d4e5f60718.png".
	FilePath string
	// Filename is the generated storage filename.
	Filename string
	Size     int64
	MIMEType string
}

// Upload runs the full pipeline for one image: path sanitization, file
// validation, filename generation and storage placement. Every failure
// returns one of the package sentinels or a storage error, so callers can
// map outcomes with errors.Is.
func (s *Service) Upload(ctx context.Context, req Request) (*Result, error) {
	if req.File == nil {
		return nil, ErrMissingFields
	}

	dir, err := SanitizePath(req.Path)
	if err != nil {
		return nil, err
	}

	if err := ValidateFile(req.File, req.DeclaredSizeLimit, s.maxFileSize); err != nil {
		return nil, err
	}

	filename := NewFilename(Extension(req.File.Filename))
	relPath := path.Join(dir, filename)

	file, err := s.storage.Save(ctx, req.File, relPath)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "image stored",
		logger.Filename(filename),
		logger.FilePath(file.RelativePath),
		logger.FileSize(file.Size),
		logger.MIMEType(file.MIMEType),
	)

	return &Result{
		FilePath: s.storage.URL(relPath),
		Filename: filename,
		Size:     file.Size,
		MIMEType: file.MIMEType,
	}, nil
}
