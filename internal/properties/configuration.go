package properties

import (
	"encoding/json"
	"fmt"
)

// Configuration is one entry of the configurations array. Fields are kept
// raw and decoded on demand so that a malformed field only matters to the
// code path that needs it.
type Configuration struct {
	Name   string
	fields map[string]json.RawMessage
}

func newConfiguration(data json.RawMessage) (*Configuration, error) {
	if jsonKind(data) != kindObject {
		return nil, fmt.Errorf("%w: configuration must be an object", ErrUnexpectedStructure)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	cfg := &Configuration{fields: fields}
	cfg.Name, _ = cfg.stringField("name")
	return cfg, nil
}

// Settings holds the fields used to synthesize compile commands.
type Settings struct {
	CompilerPath string   `json:"compilerPath,omitempty"`
	IncludePath  []string `json:"includePath"`
	Defines      []string `json:"defines"`
	CppStandard  string   `json:"cppStandard"`
}

// HasCompilerPath reports whether a usable compiler path was configured.
func (s Settings) HasCompilerPath() bool {
	return s.CompilerPath != ""
}

// Settings extracts the compiler settings. It never fails: missing or
// mistyped fields fall back to their zero values.
func (c *Configuration) Settings() Settings {
	compiler, _ := c.stringField("compilerPath")
	standard, _ := c.stringField("cppStandard")

	return Settings{
		CompilerPath: compiler,
		IncludePath:  stringList(c.fields["includePath"]),
		Defines:      stringList(c.fields["defines"]),
		CppStandard:  standard,
	}
}

// stringField returns the named field when it is a JSON string.
func (c *Configuration) stringField(name string) (string, bool) {
	raw, ok := c.fields[name]
	if !ok || jsonKind(raw) != kindString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ReferenceKind classifies the compileCommands field.
type ReferenceKind int

const (
	// ReferenceAbsent means compileCommands is missing or null.
	ReferenceAbsent ReferenceKind = iota
	// ReferenceEmbedded means compileCommands holds entries directly.
	ReferenceEmbedded
	// ReferenceFiles means compileCommands lists database file paths.
	ReferenceFiles
)

func (k ReferenceKind) String() string {
	switch k {
	case ReferenceAbsent:
		return "absent"
	case ReferenceEmbedded:
		return "embedded"
	case ReferenceFiles:
		return "files"
	default:
		return "unknown"
	}
}

// CompileCommands is the decoded compileCommands field.
type CompileCommands struct {
	Kind    ReferenceKind
	Entries []json.RawMessage
	Paths   []string
}

// CompileCommands classifies the compileCommands field. An array is
// classified by the type of its first element only: a leading string makes
// it a list of paths, anything else a list of embedded entries. A bare
// string is taken as a single path.
func (c *Configuration) CompileCommands() (CompileCommands, error) {
	raw := c.fields["compileCommands"]

	switch jsonKind(raw) {
	case kindNull:
		return CompileCommands{Kind: ReferenceAbsent}, nil

	case kindString:
		path, _ := c.stringField("compileCommands")
		return CompileCommands{Kind: ReferenceFiles, Paths: []string{path}}, nil

	case kindArray:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return CompileCommands{}, fmt.Errorf("%w: compileCommands: %v", ErrMalformedInput, err)
		}
		if len(items) > 0 && jsonKind(items[0]) == kindString {
			return CompileCommands{Kind: ReferenceFiles, Paths: stringList(raw)}, nil
		}
		return CompileCommands{Kind: ReferenceEmbedded, Entries: items}, nil

	default:
		return CompileCommands{}, fmt.Errorf("%w: compileCommands must be an array or a string", ErrUnexpectedStructure)
	}
}
