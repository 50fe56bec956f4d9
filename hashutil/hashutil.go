// Package hashutil provides streaming SHA-256 over in-memory byte
// sequences or files, always emitting 64 lowercase hex characters.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/gizzahub/lpmcore/errs"
)

const chunkSize = 4096

// HashBytes returns the lowercase hex SHA-256 digest of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile streams path in 4096-byte chunks and returns its lowercase hex
// SHA-256 digest. Failure to open the file is a reported error; a
// truncated read is not — a partial file hashes to whatever bytes it has.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &errs.PathError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	// Hide *os.File's WriteTo so io.CopyBuffer reads through buf.
	if _, err := io.CopyBuffer(h, struct{ io.Reader }{f}, buf); err != nil {
		return "", &errs.PathError{Op: "read", Path: path, Err: err}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
