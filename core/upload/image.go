package upload

import (
	"path/filepath"
	"slices"
	"strings"
)

// imageExtensions maps each accepted image MIME type to the filename
// extensions it may legitimately carry.
var imageExtensions = map[string][]string{
	"image/jpeg": {"jpg", "jpeg"},
	"image/png":  {"png"},
	"image/gif":  {"gif"},
	"image/webp": {"webp"},
}

// AllowedMIMETypes returns the accepted image MIME types in sorted order.
func AllowedMIMETypes() []string {
	types := make([]string, 0, len(imageExtensions))
	for mime := range imageExtensions {
		types = append(types, mime)
	}
	slices.Sort(types)
	return types
}

// Extension returns the lowercase extension of a filename without the
// leading dot, e.g. "JPG" in "photo.JPG" becomes "jpg".
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// extensionMatches reports whether the extension is a valid spelling for
// the given MIME type, e.g. both "jpg" and "jpeg" for image/jpeg.
func extensionMatches(ext, mime string) bool {
	return slices.Contains(imageExtensions[mime], ext)
}
