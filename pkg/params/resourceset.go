package params

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/types"
)

// ResourceSet is a base directory plus the files beneath it, relative
// and slash separated, that are copied into the image app directory.
type ResourceSet struct {
	BaseDir string
	Files   []string
}

// Source returns the absolute source path of a relative entry
func (r *ResourceSet) Source(rel string) string {
	return filepath.Join(r.BaseDir, filepath.FromSlash(rel))
}

// ValidateRelative rejects entries that are absolute or climb out of the
// directory they are resolved against.
func ValidateRelative(rel string) error {
	if rel == "" {
		return errors.New(errors.ErrInvalidInput, "empty resource path")
	}
	if path.IsAbs(rel) || filepath.IsAbs(rel) {
		return errors.Newf(errors.ErrInvalidInput, "resource path %q must be relative", rel)
	}
	clean := path.Clean(filepath.ToSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Newf(errors.ErrInvalidInput, "resource path %q escapes its base directory", rel)
	}
	return nil
}

// ScanResourceSet lists every regular file under baseDir, sorted, skipping
// entries whose relative path or base name matches one of the exclude
// globs (path.Match syntax).
func ScanResourceSet(fsys types.FS, baseDir string, exclude []string) (*ResourceSet, error) {
	for _, pattern := range exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid exclude pattern %q", pattern)
		}
	}

	info, err := fsys.Stat(baseDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read input directory %s", baseDir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "input %s is not a directory", baseDir)
	}

	var files []string
	if err := walk(fsys, baseDir, "", exclude, &files); err != nil {
		return nil, err
	}
	sort.Strings(files)

	return &ResourceSet{BaseDir: baseDir, Files: files}, nil
}

func walk(fsys types.FS, baseDir, rel string, exclude []string, files *[]string) error {
	dir := filepath.Join(baseDir, filepath.FromSlash(rel))
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir)
	}

	for _, entry := range entries {
		entryRel := path.Join(rel, entry.Name())
		if excluded(entryRel, exclude) {
			continue
		}
		if entry.IsDir() {
			if err := walk(fsys, baseDir, entryRel, exclude, files); err != nil {
				return err
			}
			continue
		}
		if entry.Type().IsRegular() {
			*files = append(*files, entryRel)
		}
	}
	return nil
}

func excluded(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
