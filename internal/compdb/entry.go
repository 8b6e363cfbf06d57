// Package compdb builds compile command databases from C/C++ properties
// documents: it resolves how a document should be turned into entries,
// synthesizes entries from compiler settings and writes the result.
package compdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/standardbeagle/ccprops2compdb/internal/properties"
)

// DefaultOutput is the conventional database location consumed by clangd
// and other tooling.
const DefaultOutput = "./compile_commands.json"

var (
	ErrMissingCompilerPath       = errors.New("compilerPath not found in configuration")
	ErrNoSourcesProvided         = errors.New("no source files provided")
	ErrInvalidReferencedDatabase = errors.New("referenced compile commands file is not a JSON array")
	ErrOutputWriteFailure        = errors.New("failed to write output")
)

// Entry is one synthesized compile command.
type Entry struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file"`
}

// Database is an ordered list of entries. Merged entries are kept as the raw
// JSON they were read from.
type Database []json.RawMessage

// Append adds a synthesized entry.
func (db *Database) Append(e Entry) error {
	raw, err := marshalNoEscape(e)
	if err != nil {
		return err
	}
	*db = append(*db, raw)
	return nil
}

// Entries decodes the database into Entry values. Fields other than
// directory, command and file are dropped.
func (db Database) Entries() ([]Entry, error) {
	out := make([]Entry, 0, len(db))
	for _, raw := range db {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func marshalNoEscape(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WorkingDir returns the process working directory, or "." when it cannot
// be determined.
func WorkingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// Synthesizer turns compiler settings into one entry per source file.
type Synthesizer struct {
	settings  properties.Settings
	directory string
}

// NewSynthesizer returns a Synthesizer stamping every entry with directory.
func NewSynthesizer(settings properties.Settings, directory string) *Synthesizer {
	return &Synthesizer{settings: settings, directory: directory}
}

// Command builds the compiler invocation for file:
//
//	<compiler> -I<inc>... -D<def>... --std=<std> -c <file>
//
// --std= is emitted even when no standard is configured.
func (s *Synthesizer) Command(file string) string {
	parts := make([]string, 0, len(s.settings.IncludePath)+len(s.settings.Defines)+4)
	parts = append(parts, s.settings.CompilerPath)
	for _, inc := range s.settings.IncludePath {
		parts = append(parts, "-I"+inc)
	}
	for _, def := range s.settings.Defines {
		parts = append(parts, "-D"+def)
	}
	parts = append(parts, "--std="+s.settings.CppStandard, "-c", file)
	return strings.Join(parts, " ")
}

// Entry synthesizes the entry for file. file is used as given.
func (s *Synthesizer) Entry(file string) Entry {
	return Entry{
		Directory: s.directory,
		Command:   s.Command(file),
		File:      file,
	}
}
