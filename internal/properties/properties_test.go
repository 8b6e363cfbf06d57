package properties

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProperties = `{
    // generated by the C/C++ extension
    "configurations": [
        {
            "name": "Linux",
            "compilerPath": "/usr/bin/gcc", /* system compiler */
            "includePath": ["/usr/include", 42, "${workspaceFolder}/include"],
            "defines": ["DEBUG", "VERSION=2"],
            "cppStandard": "c++17"
        },
        {
            "name": "Mac",
            "compilerPath": "/usr/bin/clang"
        }
    ],
    "version": 4
}`

func TestParse_Properties(t *testing.T) {
	doc, err := Parse([]byte(sampleProperties))
	require.NoError(t, err)

	assert.Equal(t, ShapeProperties, doc.Shape)
	assert.Equal(t, 2, doc.ConfigurationCount)
	assert.Equal(t, 4, doc.Version)
	require.NotNil(t, doc.Configuration)
	assert.Equal(t, "Linux", doc.Configuration.Name)

	settings := doc.Configuration.Settings()
	assert.Equal(t, "/usr/bin/gcc", settings.CompilerPath)
	assert.True(t, settings.HasCompilerPath())
	assert.Equal(t, []string{"/usr/include", "${workspaceFolder}/include"}, settings.IncludePath)
	assert.Equal(t, []string{"DEBUG", "VERSION=2"}, settings.Defines)
	assert.Equal(t, "c++17", settings.CppStandard)
}

func TestParse_Entries(t *testing.T) {
	doc, err := Parse([]byte(`[
        {"directory": "/src", "command": "cc -c a.c", "file": "a.c"}, // first
        {"directory": "/src", "file": "b.c", "arguments": ["cc", "-c", "b.c"]}
    ]`))
	require.NoError(t, err)

	assert.Equal(t, ShapeEntries, doc.Shape)
	assert.Nil(t, doc.Configuration)
	require.Len(t, doc.Entries, 2)
	assert.JSONEq(t, `{"directory": "/src", "command": "cc -c a.c", "file": "a.c"}`, string(doc.Entries[0]))
	assert.JSONEq(t, `{"directory": "/src", "file": "b.c", "arguments": ["cc", "-c", "b.c"]}`, string(doc.Entries[1]))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"not json", `{"configurations": [`, ErrMalformedInput},
		{"empty text", ``, ErrMalformedInput},
		{"only comments", `// nothing here`, ErrMalformedInput},
		{"string document", `"hello"`, ErrUnexpectedStructure},
		{"number document", `12`, ErrUnexpectedStructure},
		{"null document", `null`, ErrUnexpectedStructure},
		{"object without configurations", `{"version": 4}`, ErrUnexpectedStructure},
		{"configurations not array", `{"configurations": {"name": "x"}}`, ErrUnexpectedStructure},
		{"configuration not object", `{"configurations": ["Linux"]}`, ErrUnexpectedStructure},
		{"empty configurations", `{"configurations": []}`, ErrNoConfigurations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParse_CommentLikeStringsSurvive(t *testing.T) {
	doc, err := Parse([]byte(`{"configurations": [{
        "compilerPath": "C:\\tools//gcc.exe",
        "includePath": ["/opt/*/include"] // trailing
    }]}`))
	require.NoError(t, err)

	settings := doc.Configuration.Settings()
	assert.Equal(t, `C:\tools//gcc.exe`, settings.CompilerPath)
	assert.Equal(t, []string{"/opt/*/include"}, settings.IncludePath)
}

func TestSettings_Defaults(t *testing.T) {
	doc, err := Parse([]byte(`{"configurations": [{"includePath": "not-a-list", "defines": null, "cppStandard": 17}]}`))
	require.NoError(t, err)

	settings := doc.Configuration.Settings()
	assert.False(t, settings.HasCompilerPath())
	assert.Empty(t, settings.CompilerPath)
	assert.Equal(t, []string{}, settings.IncludePath)
	assert.Equal(t, []string{}, settings.Defines)
	assert.Empty(t, settings.CppStandard)
}

func TestSettings_NonStringCompilerPath(t *testing.T) {
	doc, err := Parse([]byte(`{"configurations": [{"compilerPath": ["/usr/bin/gcc"]}]}`))
	require.NoError(t, err)

	assert.False(t, doc.Configuration.Settings().HasCompilerPath())
}

func TestSettings_MarshalsEmptyListsAsArrays(t *testing.T) {
	doc, err := Parse([]byte(`{"configurations": [{"compilerPath": "cc"}]}`))
	require.NoError(t, err)

	data, err := json.Marshal(doc.Configuration.Settings())
	require.NoError(t, err)
	assert.JSONEq(t, `{"compilerPath": "cc", "includePath": [], "defines": [], "cppStandard": ""}`, string(data))
}

func TestCompileCommands(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		kind    ReferenceKind
		paths   []string
		entries int
	}{
		{"absent", ``, ReferenceAbsent, nil, 0},
		{"null", `"compileCommands": null,`, ReferenceAbsent, nil, 0},
		{"single string", `"compileCommands": "build/compile_commands.json",`, ReferenceFiles, []string{"build/compile_commands.json"}, 0},
		{"paths", `"compileCommands": ["a.json", "b.json"],`, ReferenceFiles, []string{"a.json", "b.json"}, 0},
		{"paths skip non-strings", `"compileCommands": ["a.json", {"file": "x.c"}, 3, "b.json"],`, ReferenceFiles, []string{"a.json", "b.json"}, 0},
		{"embedded", `"compileCommands": [{"directory": "/", "command": "cc -c x.c", "file": "x.c"}],`, ReferenceEmbedded, nil, 1},
		{"embedded first element decides", `"compileCommands": [{"file": "x.c"}, "a.json"],`, ReferenceEmbedded, nil, 2},
		{"empty array", `"compileCommands": [],`, ReferenceEmbedded, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(`{"configurations": [{` + tt.field + `"name": "x"}]}`))
			require.NoError(t, err)

			cc, err := doc.Configuration.CompileCommands()
			require.NoError(t, err)
			assert.Equal(t, tt.kind, cc.Kind)
			assert.Equal(t, tt.paths, cc.Paths)
			assert.Len(t, cc.Entries, tt.entries)
		})
	}
}

func TestCompileCommands_InvalidType(t *testing.T) {
	doc, err := Parse([]byte(`{"configurations": [{"compileCommands": 7}]}`))
	require.NoError(t, err)

	_, err = doc.Configuration.CompileCommands()
	assert.ErrorIs(t, err, ErrUnexpectedStructure)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c_cpp_properties.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleProperties), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Linux", doc.Configuration.Name)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestLoad_MalformedMentionsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), path)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "entries", ShapeEntries.String())
	assert.Equal(t, "properties", ShapeProperties.String())
	assert.Equal(t, "unknown", Shape(9).String())
}
