//go:build (darwin || linux) && !cgo

// Path helpers for locating libmediainfo during development.

package mediainfo

import (
	"os"
	"path/filepath"
	"runtime"
)

// findModuleRoot walks up the directory tree from the current working directory
// to find the module root (directory containing go.mod).
func findModuleRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return walkToGoMod(wd)
}

// findSourceRoot locates the module root from this source file, which works
// for tests and IDE runs regardless of the working directory.
func findSourceRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return walkToGoMod(filepath.Dir(file))
}

func walkToGoMod(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
