package archive

import (
	"archive/zip"
	"io"
	"os"

	"github.com/gizzahub/lpmcore/errs"
)

// dosReadOnly and dosDirectory are bits within a zip entry's DOS external
// attributes (the low 16 bits when the creating OS is DOS/FAT).
const (
	dosReadOnly  = 0x01
	dosDirectory = 0x10
)

func extractZip(src, dst string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return &errs.ArchiveError{Source: src, Reason: "open zip", Err: err}
	}
	defer r.Close()

	for _, entry := range r.File {
		target, err := joinEntry(dst, entry.Name)
		if err != nil {
			return &errs.ArchiveError{Source: src, Reason: "bad entry", Err: err}
		}

		mode := zipEntryMode(entry)

		if entry.FileInfo().IsDir() || mode.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &errs.ArchiveError{Source: src, Reason: "mkdir " + target, Err: err}
			}
			continue
		}

		if err := mkdirForFile(target); err != nil {
			return &errs.ArchiveError{Source: src, Reason: "mkdir parent of " + target, Err: err}
		}

		if err := writeZipEntry(entry, target, mode); err != nil {
			return &errs.ArchiveError{Source: src, Reason: "write " + target, Err: err}
		}
	}

	return nil
}

func writeZipEntry(entry *zip.File, target string, mode os.FileMode) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, rc); err != nil {
		return err
	}

	return os.Chmod(target, mode.Perm())
}

// zipEntryMode derives a POSIX file mode from a zip entry's external
// attributes. When the creating system was DOS/FAT (CreatorVersion's
// upper byte 0), only the read-only and directory bits are meaningful, so
// they're translated to a conservative 0644/0755 pair; otherwise the
// upper 16 bits of ExternalAttrs already hold a POSIX mode_t.
func zipEntryMode(entry *zip.File) os.FileMode {
	creatorOS := entry.CreatorVersion >> 8

	if creatorOS == 0 { // FAT/DOS
		attrs := entry.ExternalAttrs & 0xFF
		mode := os.FileMode(0o644)
		if attrs&dosReadOnly != 0 {
			mode = 0o444
		}
		if attrs&dosDirectory != 0 {
			mode |= os.ModeDir
			mode |= 0o111
		}
		return mode
	}

	mode := os.FileMode(entry.ExternalAttrs >> 16)
	if mode.Perm() == 0 {
		return 0o644
	}
	return mode
}
