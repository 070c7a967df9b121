// Package output writes rendered documents to disk or stdout.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

var outputLocks = struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}{locks: make(map[string]*sync.Mutex)}

func lockForPath(path string) func() {
	outputLocks.mu.Lock()
	m, ok := outputLocks.locks[path]
	if !ok {
		m = &sync.Mutex{}
		outputLocks.locks[path] = m
	}
	outputLocks.mu.Unlock()
	m.Lock()
	return func() { m.Unlock() }
}

// Write stores content at path, creating parent directories as needed. A
// path of "-" writes to stdout. Writes to the same path are serialized so
// callers that render jobs in parallel do not interleave.
func Write(path string, content []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(content)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("output: create directory %s: %w", dir, err)
		}
	}

	unlock := lockForPath(path)
	defer unlock()

	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		log.Warn().Str("path", path).Msg("overwriting existing output file")
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("bytes", len(content)).Msg("output written")
	return nil
}
