package appimage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/appimg/pkg/errors"
)

// modeFunc computes the final permission bits of a written entry from the
// bits it was created with.
type modeFunc func(current fs.FileMode) fs.FileMode

// executable adds execute for everyone and write for the owner
func executable(current fs.FileMode) fs.FileMode {
	return current | 0111 | 0200
}

// ownerWritable adds write for the owner so a later build can replace
// the entry
func ownerWritable(current fs.FileMode) fs.FileMode {
	return current | 0200
}

// sourceMode takes the source's bits, plus write for the owner
func sourceMode(src fs.FileMode) modeFunc {
	return func(fs.FileMode) fs.FileMode { return src | 0200 }
}

// writeEntry streams r into dst and then applies mode. The destination is
// created or truncated; parents are created as needed. The handle is
// always closed, and any failing step is returned wrapped with the path.
func (b *Builder) writeEntry(r io.Reader, dst string, mode modeFunc) error {
	if err := b.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create parent directory of %s", dst)
	}

	w, err := b.fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot open %s for writing", dst)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot write %s", dst)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot close %s", dst)
	}

	info, err := b.fs.Stat(dst)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilePermission, "cannot stat %s", dst)
	}
	perm := mode(info.Mode().Perm())
	if err := b.fs.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFilePermission, "cannot set mode %o on %s", perm, dst).
			WithDetail("mode", perm)
	}
	return nil
}

// copyFile copies src to dst keeping the source permission bits. The
// copy is always owner writable.
func (b *Builder) copyFile(src, dst string) error {
	info, err := b.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot stat %s", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFileCopy, "cannot copy directory %s as a file", src)
	}

	in, err := b.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot open %s", src)
	}
	defer in.Close()

	return b.writeEntry(in, dst, sourceMode(info.Mode().Perm()))
}
