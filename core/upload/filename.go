package upload

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

const suffixBytes = 8

// NewFilename returns a unique storage filename in the form
// "{unixTimestamp}_{16 hex chars}.{ext}", e.g.
// "1724572800_a1b2c3d4e5f60718.png". The random suffix makes collisions
// within the same second practically impossible, so existing files are
// never overwritten.
func NewFilename(ext string) string {
	buf := make([]byte, suffixBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	name := strconv.FormatInt(time.Now().Unix(), 10) + "_" + hex.EncodeToString(buf)
	if ext == "" {
		return name
	}
	return name + "." + ext
}
