package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize is the default per-file limit of 5MB.
const MaxFileSize int64 = 5 * 1024 * 1024

// ValidateFile checks an uploaded file against the size limits and the
// accepted image types. The declared limit is the raw MAX_FILE_SIZE form
// value accompanying the upload, checked before the absolute limit. The
// file content is sniffed, so a renamed executable does not pass as an
// image, and the filename extension must agree with the detected type.
func ValidateFile(fh *multipart.FileHeader, declaredLimit string, maxFileSize int64) error {
	if fh == nil || fh.Filename == "" || fh.Size == 0 {
		return ErrNoFile
	}
	if limit := parseDeclaredLimit(declaredLimit); limit > 0 && fh.Size > limit {
		return ErrSizeExceedsFormLimit
	}
	if fh.Size > maxFileSize {
		return ErrFileTooLarge
	}

	mime, err := detectImageType(fh)
	if err != nil {
		return err
	}
	if !extensionMatches(Extension(fh.Filename), mime) {
		return ErrExtensionMismatch
	}
	return nil
}

// ClassifyFormError maps a multipart parsing failure onto the matching
// upload error. Bodies cut off by the server size cap surface as
// ErrSizeExceedsServerLimit, truncated transfers as ErrPartialUpload, and
// anything else, including non-multipart bodies, as ErrMissingFields.
func ClassifyFormError(err error) error {
	if err == nil {
		return nil
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return ErrSizeExceedsServerLimit
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrPartialUpload
	}
	return ErrMissingFields
}

// detectImageType sniffs the file content and returns the canonical MIME
// type when it is an accepted image type.
func detectImageType(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", errors.Join(ErrInvalidFileType, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", errors.Join(ErrInvalidFileType, err)
	}

	for allowed := range imageExtensions {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}
	return "", ErrInvalidFileType
}

// parseDeclaredLimit reads the leading integer of a MAX_FILE_SIZE value,
// so "1048576", " 1048576 " and "1048576 bytes" all parse to the same
// limit. Missing, malformed and negative values mean no declared limit.
func parseDeclaredLimit(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}

	limit, err := strconv.ParseInt(s[:j], 10, 64)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
