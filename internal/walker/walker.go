// Package walker enumerates candidate filesystem entries under a root.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
)

// WalkErrorType represents the type of walk error.
type WalkErrorType string

const (
	// RootNotFound indicates the root path does not exist.
	RootNotFound WalkErrorType = "ROOT_NOT_FOUND"
	// PermissionDenied indicates a subtree could not be read.
	PermissionDenied WalkErrorType = "PERMISSION_DENIED"
	// ReadError indicates any other I/O failure while reading a directory.
	ReadError WalkErrorType = "READ_ERROR"
)

// WalkError records a directory that could not be enumerated.
type WalkError struct {
	Type WalkErrorType
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// Entry represents one candidate found during the walk. Entries are not
// cached across runs; each Walk performs an independent traversal.
type Entry struct {
	Path  string
	IsDir bool
}

// Walk enumerates files under root depth-first, including directory entries
// when includeDirs is set. The root itself is never yielded. Subtrees that
// cannot be read are skipped and reported in the second return value so a
// permission problem on one branch never aborts the whole enumeration. A
// missing or unreadable root is a hard error.
func Walk(root string, includeDirs bool) ([]Entry, []error, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &WalkError{Type: RootNotFound, Path: root, Err: err}
		}
		return nil, nil, err
	}

	var entries []Entry
	var skipped []error

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			skipped = append(skipped, walkError(path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			if includeDirs {
				entries = append(entries, Entry{Path: path, IsDir: true})
			}
			return nil
		}
		entries = append(entries, Entry{Path: path, IsDir: false})
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}
	return entries, skipped, nil
}

func walkError(path string, err error) *WalkError {
	if os.IsPermission(err) {
		return &WalkError{Type: PermissionDenied, Path: path, Err: err}
	}
	return &WalkError{Type: ReadError, Path: path, Err: err}
}
