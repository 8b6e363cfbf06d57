package compdb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdoutPath makes WriteFile write to standard output.
const StdoutPath = "-"

// Write encodes db as a pretty-printed JSON array.
func Write(w io.Writer, db Database) error {
	if db == nil {
		db = Database{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(db); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteFile writes db to path through a temp file in the same directory, so
// an existing database is only replaced once the new one is complete.
func WriteFile(path string, db Database) error {
	if path == StdoutPath {
		if err := Write(os.Stdout, db); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrOutputWriteFailure, err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create dir %s: %v", ErrOutputWriteFailure, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputWriteFailure, path, err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, db); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrOutputWriteFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrOutputWriteFailure, path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrOutputWriteFailure, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("%w: %s: %v", ErrOutputWriteFailure, path, err)
	}

	return nil
}
