package utils

import (
	"errors"
	"os"
	"path/filepath"
)

var ErrSearchFile = errors.New("could not search file")

// SearchFilePathtoUpward finds a regular file named fileName in root or its ancestors.
//
// # Returns
//
// - string: path to the nearest file found.
//
// - error: ErrSearchFile if there are no such files.
func SearchFilePathtoUpward(root string, fileName string) (string, error) {
	path := filepath.Join(root, fileName)
	if s, err := os.Stat(path); err == nil && s.Mode().IsRegular() {
		return path, nil
	}

	parent := filepath.Dir(root)
	if parent == root {
		return "", ErrSearchFile
	}
	return SearchFilePathtoUpward(parent, fileName)
}
