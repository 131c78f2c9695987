// Package checksum implements file content hashing for change detection.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize bounds memory use when hashing large snapshot files.
const chunkSize = 4096

// FileSHA256 computes the SHA-256 digest of a file's bytes and returns it
// as a 64-character hex string. The file is read through a fixed-size
// buffer, so memory use is independent of file size. Identical bytes
// always produce identical digests; this is the sole mechanism used to
// decide whether persisted snapshot content changed between writes.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, chunkSize)); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
