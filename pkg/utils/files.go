package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"asmfront/pkg/frontend"
)

// Stdin is the path that names standard input.
const Stdin = "-"

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", errors.Wrapf(err, "resolve %s", relPath)
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource loads one assembly file. The source is named by its path as
// given, so diagnostics read the way the user typed it.
func ReadSource(path string) (frontend.Source, error) {
	if path == Stdin {
		return readFrom("<stdin>", os.Stdin)
	}
	fullPath, _, err := GetPathInfo(path)
	if err != nil {
		return frontend.Source{}, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return frontend.Source{}, errors.Wrapf(err, "read %s", path)
	}
	return frontend.Source{Name: path, Text: string(data)}, nil
}

// ReadSources loads every path in order and stops at the first failure.
func ReadSources(paths []string) ([]frontend.Source, error) {
	srcs := make([]frontend.Source, 0, len(paths))
	for _, p := range paths {
		src, err := ReadSource(p)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}

func readFrom(name string, r io.Reader) (frontend.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return frontend.Source{}, errors.Wrapf(err, "read %s", name)
	}
	return frontend.Source{Name: name, Text: string(data)}, nil
}
