package archive

import (
	"archive/tar"
	"io"
	"os"

	"github.com/gizzahub/lpmcore/errs"
)

// extractTar iterates USTar records (with GNU long-name and PAX extended
// header support) until the archive's terminating zero-block, applying
// each record's type:
//   - regular file: write body, chmod to the header's mode.
//   - directory: mkdir.
//   - symlink: create a symlink whose target is the header's Linkname.
//
// archive/tar resolves PAX "x" (one-shot) extended headers and GNU
// long-name/long-link records before Next() returns. A PAX "g" (sticky,
// global) header is instead returned as an entry of its own; extractTar
// keeps the most recent one and applies its "path" and "linkpath" records
// to every later entry that carries no "x" record for the same key.
func extractTar(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return &errs.ArchiveError{Source: src, Reason: "open tar", Err: err}
	}
	defer f.Close()

	tr := tar.NewReader(f)
	var global map[string]string

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &errs.ArchiveError{Source: src, Reason: "read tar header", Err: err}
		}

		if hdr.Typeflag == tar.TypeXGlobalHeader {
			global = hdr.PAXRecords
			continue
		}
		if v := global["path"]; v != "" && hdr.PAXRecords["path"] == "" {
			hdr.Name = v
		}
		if v := global["linkpath"]; v != "" && hdr.PAXRecords["linkpath"] == "" {
			hdr.Linkname = v
		}

		target, err := joinEntry(dst, hdr.Name)
		if err != nil {
			return &errs.ArchiveError{Source: src, Reason: "bad entry", Err: err}
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)&os.ModePerm|0o700); err != nil {
				return &errs.ArchiveError{Source: src, Reason: "mkdir " + target, Err: err}
			}

		case tar.TypeSymlink:
			if err := mkdirForFile(target); err != nil {
				return &errs.ArchiveError{Source: src, Reason: "mkdir parent of " + target, Err: err}
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return &errs.ArchiveError{Source: src, Reason: "symlink " + target, Err: err}
			}

		case tar.TypeReg, tar.TypeRegA:
			if err := mkdirForFile(target); err != nil {
				return &errs.ArchiveError{Source: src, Reason: "mkdir parent of " + target, Err: err}
			}
			if err := writeTarFile(tr, target, os.FileMode(hdr.Mode)&os.ModePerm); err != nil {
				return &errs.ArchiveError{Source: src, Reason: "write " + target, Err: err}
			}

		default:
			// Hard links, devices, fifos and the like have no place in
			// a package archive; skip their bodies without failing the
			// whole extraction.
		}
	}

	return nil
}

func writeTarFile(r io.Reader, target string, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return err
	}

	return out.Chmod(mode)
}
