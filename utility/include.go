package utility

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// LoadFunc loads the module stored at path. Errors it returns are passed
// back to the caller of IncludeIfExists or IncludeOnceIfExists unchanged.
type LoadFunc func(path string) error

// loadedModules is the process-wide set of paths IncludeOnceIfExists has
// loaded, together with the logger it reports to.
var loadedModules = struct {
	mu     sync.Mutex
	paths  map[string]struct{}
	logger Logger
}{paths: map[string]struct{}{}, logger: slog.Default()}

// SetIncludeLogger replaces the logger used by IncludeOnceIfExists.
// A nil l is ignored.
func SetIncludeLogger(l Logger) {
	if l == nil {
		return
	}

	loadedModules.mu.Lock()
	defer loadedModules.mu.Unlock()

	loadedModules.logger = l
}

// IncludeIfExists loads the file at path with load if path exists and is a
// regular file. It returns false, without calling load, otherwise.
//
// A nil load means DefineFromFile.
//
// Example:
//
//	ok, err := IncludeIfExists("/etc/shop/constants.yaml", nil)
func IncludeIfExists(path string, load LoadFunc) (bool, error) {
	if !isIncludable(path) {
		return false, nil
	}

	if load == nil {
		load = DefineFromFile
	}

	return true, load(path)
}

// IncludeOnceIfExists works like IncludeIfExists, but load runs at most once
// per file for the lifetime of the process, no matter how many times, or
// from how many goroutines, it is called with a path resolving to that file.
//
// A file is marked as loaded before load runs, so a loader that includes,
// directly or through other files, the file it is loading gets true, nil
// back immediately. Other callers do not wait for the first load to finish
// either. Only the first caller sees the loader's error; the file counts
// as loaded even when that error is not nil.
func IncludeOnceIfExists(path string, load LoadFunc) (bool, error) {
	if !isIncludable(path) {
		return false, nil
	}

	if load == nil {
		load = DefineFromFile
	}

	resolved := resolvePath(path)

	loadedModules.mu.Lock()
	if _, ok := loadedModules.paths[resolved]; ok {
		loadedModules.mu.Unlock()
		return true, nil
	}
	loadedModules.paths[resolved] = struct{}{}
	logger := loadedModules.logger
	loadedModules.mu.Unlock()

	if err := load(path); err != nil {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "module load failed",
			slog.String("path", resolved), slog.Any("error", err))
		return true, err
	}

	logger.LogAttrs(context.Background(), slog.LevelDebug, "module loaded",
		slog.String("path", resolved))

	return true, nil
}

// Included returns the resolved paths IncludeOnceIfExists has loaded, sorted.
func Included() []string {
	loadedModules.mu.Lock()
	defer loadedModules.mu.Unlock()

	paths := make([]string, 0, len(loadedModules.paths))
	for p := range loadedModules.paths {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	return paths
}

func isIncludable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// resolvePath returns the absolute, symlink-free form of path, falling back
// to the cleaned path when it cannot be resolved.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	evaluated, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}

	return evaluated
}
