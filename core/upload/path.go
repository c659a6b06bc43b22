package upload

import (
	"regexp"
	"strings"
)

var pathPattern = regexp.MustCompile(`^[a-zA-Z0-9/_-]+$`)

// SanitizePath validates a client-supplied destination path and returns it
// unchanged when acceptable. Paths are relative, may contain slashes to
// address subdirectories, and are limited to alphanumeric characters,
// slashes, hyphens and underscores. Anything that could address a location
// outside the upload root is rejected.
func SanitizePath(p string) (string, error) {
	if p == "" {
		return "", ErrInvalidPath
	}
	if strings.Contains(p, "..") {
		return "", ErrInvalidPath
	}
	if strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	if !pathPattern.MatchString(p) {
		return "", ErrInvalidPath
	}
	return p, nil
}
