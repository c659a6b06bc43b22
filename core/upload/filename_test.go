package upload_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imgstore/core/upload"
)

var filenamePattern = regexp.MustCompile(`^(\d+)_([0-9a-f]{16})\.png$`)

func TestNewFilename(t *testing.T) {
	t.Parallel()

	t.Run("format", func(t *testing.T) {
		t.Parallel()

		before := time.Now().Unix()
		name := upload.NewFilename("png")
		after := time.Now().Unix()

		matches := filenamePattern.FindStringSubmatch(name)
		require.NotNil(t, matches, "filename %q", name)

		ts, err := strconv.ParseInt(matches[1], 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ts, before)
		assert.LessOrEqual(t, ts, after)
	})

	t.Run("unique across calls", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{})
		for range 100 {
			name := upload.NewFilename("jpg")
			_, dup := seen[name]
			require.False(t, dup, "duplicate filename %q", name)
			seen[name] = struct{}{}
		}
	})

	t.Run("no extension", func(t *testing.T) {
		t.Parallel()

		name := upload.NewFilename("")
		assert.False(t, strings.Contains(name, "."), "filename %q", name)
	})
}
