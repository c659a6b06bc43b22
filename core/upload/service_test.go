package upload_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imgstore/core/logger"
	"github.com/dmitrymomot/imgstore/core/storage"
	"github.com/dmitrymomot/imgstore/core/upload"
)

type stubStorage struct {
	saveFn    func(ctx context.Context, fh *multipart.FileHeader, path string) (*storage.File, error)
	savedPath string
}

func (s *stubStorage) Save(ctx context.Context, fh *multipart.FileHeader, path string) (*storage.File, error) {
	s.savedPath = path
	if s.saveFn != nil {
		return s.saveFn(ctx, fh, path)
	}
	return &storage.File{
		Filename:     path[strings.LastIndex(path, "/")+1:],
		Size:         fh.Size,
		MIMEType:     "image/png",
		RelativePath: path,
	}, nil
}

func (s *stubStorage) Delete(context.Context, string) error         { return nil }
func (s *stubStorage) DeleteDir(context.Context, string) error      { return nil }
func (s *stubStorage) Exists(context.Context, string) bool          { return false }
func (s *stubStorage) List(context.Context, string) ([]storage.Entry, error) {
	return nil, nil
}
func (s *stubStorage) URL(path string) string { return "uploads/" + path }

func TestNewService(t *testing.T) {
	t.Parallel()

	_, err := upload.NewService(nil)
	require.ErrorIs(t, err, upload.ErrNilStorage)
}

func TestServiceUpload(t *testing.T) {
	t.Parallel()

	t.Run("stores valid upload", func(t *testing.T) {
		t.Parallel()

		store := &stubStorage{}
		var logBuf bytes.Buffer
		svc, err := upload.NewService(store, upload.WithLogger(logger.New(
			logger.WithOutput(&logBuf),
			logger.WithJSONFormatter(),
		)))
		require.NoError(t, err)

		result, err := svc.Upload(context.Background(), upload.Request{
			Path: "avatars/2024",
			File: fileHeader(t, "My Photo.PNG", pngBytes),
		})
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f]{16}\.png$`), result.Filename, "extension is lowercased")
		assert.Equal(t, "avatars/2024/"+result.Filename, store.savedPath)
		assert.Equal(t, "uploads/avatars/2024/"+result.Filename, result.FilePath)
		assert.Equal(t, int64(len(pngBytes)), result.Size)
		assert.Equal(t, "image/png", result.MIMEType)

		assert.Contains(t, logBuf.String(), "image stored")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		svc, err := upload.NewService(&stubStorage{})
		require.NoError(t, err)

		_, err = svc.Upload(context.Background(), upload.Request{Path: "avatars"})
		require.ErrorIs(t, err, upload.ErrMissingFields)
	})

	t.Run("invalid path", func(t *testing.T) {
		t.Parallel()

		svc, err := upload.NewService(&stubStorage{})
		require.NoError(t, err)

		for _, p := range []string{"", "../escape", "/absolute", "has space"} {
			_, err = svc.Upload(context.Background(), upload.Request{
				Path: p,
				File: fileHeader(t, "photo.png", pngBytes),
			})
			assert.ErrorIs(t, err, upload.ErrInvalidPath, "path %q", p)
		}
	})

	t.Run("validation failures pass through", func(t *testing.T) {
		t.Parallel()

		svc, err := upload.NewService(&stubStorage{})
		require.NoError(t, err)

		_, err = svc.Upload(context.Background(), upload.Request{
			Path: "docs",
			File: fileHeader(t, "notes.txt", []byte("plain text")),
		})
		require.ErrorIs(t, err, upload.ErrInvalidFileType)
	})

	t.Run("custom size limit", func(t *testing.T) {
		t.Parallel()

		svc, err := upload.NewService(&stubStorage{}, upload.WithMaxFileSize(16))
		require.NoError(t, err)

		_, err = svc.Upload(context.Background(), upload.Request{
			Path: "avatars",
			File: fileHeader(t, "photo.png", pngBytes),
		})
		require.ErrorIs(t, err, upload.ErrFileTooLarge)
	})

	t.Run("storage errors keep their identity", func(t *testing.T) {
		t.Parallel()

		store := &stubStorage{
			saveFn: func(context.Context, *multipart.FileHeader, string) (*storage.File, error) {
				return nil, errors.Join(storage.ErrFailedToCreateDir, errors.New("mkdir: permission denied"))
			},
		}
		svc, err := upload.NewService(store)
		require.NoError(t, err)

		_, err = svc.Upload(context.Background(), upload.Request{
			Path: "avatars",
			File: fileHeader(t, "photo.png", pngBytes),
		})
		require.ErrorIs(t, err, storage.ErrFailedToCreateDir)
	})
}
