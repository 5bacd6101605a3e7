// Package hexastore holds helpers shared by the hexastore commands.
package hexastore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// cspell:words nquads

var errWrongArgCount = errors.New("need exactly one argument")

// FindSource finds the nquads file for the given path.
// The path is either the file itself, or a directory containing exactly one '*.nq' file.
// FindSource does not guarantee that contents are loadable.
func FindSource(argv ...string) (nq string, err error) {
	if len(argv) != 1 {
		return "", errWrongArgCount
	}

	isDir, err := isDirectory(argv[0])
	if err != nil {
		return "", err
	}

	nq = argv[0]
	if isDir {
		nqs, err := filepath.Glob(filepath.Join(argv[0], "*.nq"))
		if err != nil {
			return "", err
		}
		if len(nqs) != 1 {
			return "", fmt.Errorf("need exactly one '*.nq' in %q, but got %d", argv[0], len(nqs))
		}
		nq = nqs[0]
	}

	ok, err := isFile(nq)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%q is not a regular file", nq)
	}
	return nq, nil
}

func isDirectory(path string) (ok bool, err error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return stats.Mode().IsDir(), nil
}

func isFile(path string) (ok bool, err error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return stats.Mode().IsRegular(), nil
}
