package storage

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SanitizeFilename strips directory components and replaces characters that
// are unsafe in filenames. Returns "file" when nothing usable remains.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), "._")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}

// GetMIMEType detects the MIME type of an uploaded file by sniffing its
// content. Falls back to the Content-Type header supplied by the client,
// then to application/octet-stream.
func GetMIMEType(fh *multipart.FileHeader) string {
	if fh == nil {
		return "application/octet-stream"
	}

	if f, err := fh.Open(); err == nil {
		defer f.Close()
		if mtype, err := mimetype.DetectReader(f); err == nil {
			return mtype.String()
		}
	}

	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// GetExtension returns the lowercase filename extension without the leading
// dot, e.g. "png". Returns an empty string when the filename has none.
func GetExtension(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	ext := filepath.Ext(fh.Filename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
