// Package properties loads c_cpp_properties.json documents and extracts the
// compiler settings of the configuration that drives a run.
package properties

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/standardbeagle/ccprops2compdb/internal/jsonc"
)

// DefaultPath is where VS Code keeps the C/C++ extension settings.
const DefaultPath = ".vscode/c_cpp_properties.json"

var (
	ErrInputNotFound       = errors.New("input file not found")
	ErrMalformedInput      = errors.New("malformed JSON")
	ErrUnexpectedStructure = errors.New("unexpected document structure")
	ErrNoConfigurations    = errors.New("no configurations found")
)

// Shape tells which of the recognized top-level forms a document has.
type Shape int

const (
	// ShapeEntries is a bare array of compile command entries.
	ShapeEntries Shape = iota
	// ShapeProperties is an object holding a configurations array.
	ShapeProperties
)

func (s Shape) String() string {
	switch s {
	case ShapeEntries:
		return "entries"
	case ShapeProperties:
		return "properties"
	default:
		return "unknown"
	}
}

// Document is a parsed input file.
type Document struct {
	Shape Shape

	// Entries holds the array elements verbatim when Shape is ShapeEntries.
	Entries []json.RawMessage

	// Configuration is the first element of configurations when Shape is
	// ShapeProperties. Later elements are never read.
	Configuration *Configuration

	// ConfigurationCount is the length of the configurations array.
	ConfigurationCount int

	// Version is the optional top-level "version" field, 0 when absent.
	Version int
}

type propertiesFile struct {
	Configurations json.RawMessage `json:"configurations"`
	Version        json.RawMessage `json:"version"`
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse strips comments from data and recognizes the document shape.
func Parse(data []byte) (*Document, error) {
	stripped := jsonc.Strip(data)

	var top json.RawMessage
	if err := json.Unmarshal(stripped, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	switch jsonKind(top) {
	case kindArray:
		var entries []json.RawMessage
		if err := json.Unmarshal(top, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return &Document{Shape: ShapeEntries, Entries: entries}, nil
	case kindObject:
		return parseProperties(top)
	default:
		return nil, fmt.Errorf("%w: expected an array or an object with configurations", ErrUnexpectedStructure)
	}
}

func parseProperties(data json.RawMessage) (*Document, error) {
	var file propertiesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if jsonKind(file.Configurations) != kindArray {
		return nil, fmt.Errorf("%w: configurations must be an array", ErrUnexpectedStructure)
	}

	var configs []json.RawMessage
	if err := json.Unmarshal(file.Configurations, &configs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(configs) == 0 {
		return nil, ErrNoConfigurations
	}

	cfg, err := newConfiguration(configs[0])
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Shape:              ShapeProperties,
		Configuration:      cfg,
		ConfigurationCount: len(configs),
	}

	// version is informational; a non-numeric value is ignored
	var version float64
	if json.Unmarshal(file.Version, &version) == nil {
		doc.Version = int(version)
	}

	return doc, nil
}

type kind int

const (
	kindNull kind = iota
	kindObject
	kindArray
	kindString
	kindScalar
)

// jsonKind reports the JSON type of an already-validated value.
func jsonKind(v json.RawMessage) kind {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return kindNull
	}
	switch v[0] {
	case '{':
		return kindObject
	case '[':
		return kindArray
	case '"':
		return kindString
	case 'n':
		return kindNull
	default:
		return kindScalar
	}
}
