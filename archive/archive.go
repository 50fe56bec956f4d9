// Package archive provides a polymorphic extractor for zip, tar, tar.gz,
// and tar.xz archives. Format is inferred from filename substrings, never
// from magic-byte sniffing, so a caller can rename a fetched payload
// ahead of extraction and control dispatch.
//
// zip, tar and gzip decoding use the standard library (archive/zip,
// archive/tar, compress/gzip): Go's archive/tar already implements the
// USTar layout, GNU long-name extensions, and PAX extended headers
// (one-shot "x" records; sticky "g" records are handed back to the
// caller, and extractTar carries them forward), so hand-rolling a
// second USTar reader on top would only reintroduce bugs the standard
// library has long since fixed. xz has no standard-library decoder, so
// that stage uses ulikunitz/xz.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gizzahub/lpmcore/errs"
)

// maxPathLen is a conservative cross-platform ceiling; real limits vary
// (255 per-component on most filesystems, ~260 total on legacy Windows
// paths), but failing fast on something clearly too long avoids a
// half-written extraction.
const maxPathLen = 4096

// Extract extracts the archive at src into destination directory dst,
// choosing a format by filename substring: ".zip", then ".gz"/".tgz",
// then ".xz"/".txz", then ".tar". The first matching substring wins, so
// "archive.tar.gz" is handled by the gzip branch (which un-gzips into an
// intermediate .tar file and then re-enters as tar), not the tar branch.
func Extract(ctx context.Context, src, dst string) error {
	if len(src) > maxPathLen {
		return &errs.ArchiveError{Source: src, Reason: "source path exceeds platform path limit"}
	}

	switch {
	case strings.Contains(src, ".zip"):
		return extractZip(src, dst)
	case strings.Contains(src, ".gz"), strings.Contains(src, ".tgz"):
		return extractCompressed(ctx, src, dst, gunzipTo)
	case strings.Contains(src, ".xz"), strings.Contains(src, ".txz"):
		return extractCompressed(ctx, src, dst, xzDecodeTo)
	case strings.Contains(src, ".tar"):
		return extractTar(src, dst)
	default:
		return &errs.ArchiveError{Source: src, Reason: "unrecognized archive format"}
	}
}

// intermediateTarPath derives the decompressed file's name by stripping
// the compression suffix: ".tar.gz" -> ".tar", ".tgz" -> ".tar",
// ".tar.xz" -> ".tar", ".txz" -> ".tar". Any other name keeps its suffix
// and gets ".tar" appended ("a.gz" -> "a.gz.tar").
func intermediateTarPath(src string) string {
	switch {
	case strings.HasSuffix(src, ".tar.gz"):
		return strings.TrimSuffix(src, ".gz")
	case strings.HasSuffix(src, ".tgz"):
		return strings.TrimSuffix(src, ".tgz") + ".tar"
	case strings.HasSuffix(src, ".tar.xz"):
		return strings.TrimSuffix(src, ".xz")
	case strings.HasSuffix(src, ".txz"):
		return strings.TrimSuffix(src, ".txz") + ".tar"
	default:
		return src + ".tar"
	}
}

// decoderFunc copies the decompressed bytes of src into the file at
// tarPath.
type decoderFunc func(src, tarPath string) error

func extractCompressed(ctx context.Context, src, dst string, decode decoderFunc) error {
	tarPath := intermediateTarPath(src)

	if err := decode(src, tarPath); err != nil {
		return &errs.ArchiveError{Source: src, Reason: "decompress", Err: err}
	}
	defer os.Remove(tarPath)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := extractTar(tarPath, dst); err != nil {
		return err
	}

	return nil
}

// mkdirForFile ensures every intermediate directory of target exists,
// as if by mkdir -p, tolerating an already-existing prefix.
func mkdirForFile(target string) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// joinEntry joins dst with an archive-relative entry name, guarding
// against a path that would escape dst via ".." components (zip-slip).
func joinEntry(dst, name string) (string, error) {
	cleaned := filepath.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return filepath.Join(dst, cleaned), nil
}
