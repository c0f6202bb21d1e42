// Package collision resolves destination paths that would overwrite an
// existing file by appending a numeric disambiguator.
package collision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Exists checks if a path exists on the filesystem.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// splitExt splits a base name into stem and extension at the last dot.
// A name that is nothing but its extension (".bashrc") is treated as having
// no extension, so the disambiguator lands at the end of the name.
func splitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if stem == "" {
		return name, ""
	}
	return stem, ext
}

// Resolve returns desired unchanged when nothing exists there, otherwise the
// first free path among stem(1)ext, stem(2)ext, ... No indices are skipped,
// so the smallest unused disambiguator is always chosen.
func Resolve(desired string) string {
	if !Exists(desired) {
		return desired
	}
	dir := filepath.Dir(desired)
	stem, ext := splitExt(filepath.Base(desired))
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s(%d)%s", stem, i, ext))
		if !Exists(candidate) {
			return candidate
		}
	}
}

// BackupPath returns a free backup path for src: src.bak, then src.bak(1),
// src.bak(2), ... The disambiguator is appended after the backup suffix, not
// inserted before the original extension.
func BackupPath(src string) string {
	candidate := src + ".bak"
	if !Exists(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		trial := fmt.Sprintf("%s.bak(%d)", src, i)
		if !Exists(trial) {
			return trial
		}
	}
}
