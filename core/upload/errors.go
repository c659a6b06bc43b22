package upload

import "errors"

var (
	// Configuration errors.
	ErrNilStorage = errors.New("nil storage")

	// Request errors.
	ErrMissingFields = errors.New("missing image or path field")
	ErrInvalidPath   = errors.New("invalid upload path")

	// Transfer errors.
	ErrSizeExceedsServerLimit = errors.New("file exceeds server upload limit")
	ErrSizeExceedsFormLimit   = errors.New("file exceeds form declared limit")
	ErrPartialUpload          = errors.New("file was only partially uploaded")
	ErrNoFile                 = errors.New("no file was uploaded")

	// Validation errors.
	ErrFileTooLarge      = errors.New("file size exceeds maximum allowed size")
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrExtensionMismatch = errors.New("file extension does not match file type")
)
