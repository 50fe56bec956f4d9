package archive

import (
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// xzDecodeTo decompresses src (xz-compressed, possibly a concatenation of
// multiple xz streams) into a new file at tarPath. ulikunitz/xz's reader
// decodes concatenated streams transparently by default: reading past
// one stream's end simply continues into the next.
func xzDecodeTo(src, tarPath string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(tarPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	for {
		r, err := xz.NewReader(in)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, r); err != nil {
			return err
		}
	}

	return nil
}
