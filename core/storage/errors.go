package storage

import "errors"

var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid storage config")

	// Input errors.
	ErrNilFileHeader = errors.New("nil file header")
	ErrInvalidPath   = errors.New("invalid storage path")

	// Operation errors.
	ErrFailedToOpenFile    = errors.New("failed to open uploaded file")
	ErrFailedToCreateDir   = errors.New("failed to create directory")
	ErrFailedToMoveFile    = errors.New("failed to move file to destination")
	ErrFileNotFound        = errors.New("file not found")
	ErrDirectoryNotFound   = errors.New("directory not found")
	ErrFailedToDeleteFile  = errors.New("failed to delete file")
	ErrFailedToListEntries = errors.New("failed to list directory entries")

	// Remote backend errors.
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
	ErrServiceUnavailable = errors.New("storage service unavailable")
	ErrPaginatorNil       = errors.New("paginator is nil")
)
