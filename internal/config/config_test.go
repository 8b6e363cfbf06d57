package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL(t *testing.T) {
	tests := []struct {
		name     string
		kdl      string
		expected Settings
	}{
		{
			name: "all fields",
			kdl: `input "cfg/c_cpp_properties.json"
output "build/compile_commands.json"
sources "src/main.c" "src/util.c"
`,
			expected: Settings{
				Input:   "cfg/c_cpp_properties.json",
				Output:  "build/compile_commands.json",
				Sources: []string{"src/main.c", "src/util.c"},
				Source:  SourceProject,
			},
		},
		{
			name:     "output only",
			kdl:      `output "out.json"`,
			expected: Settings{Output: "out.json", Source: SourceProject},
		},
		{
			name:     "single source",
			kdl:      `sources "main.c"`,
			expected: Settings{Sources: []string{"main.c"}, Source: SourceProject},
		},
		{
			name:     "empty document",
			kdl:      ``,
			expected: Settings{Source: SourceProject},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseKDL([]byte(tt.kdl), SourceProject)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Input, s.Input)
			assert.Equal(t, tt.expected.Output, s.Output)
			assert.Equal(t, tt.expected.Sources, s.Sources)
			assert.Equal(t, tt.expected.Source, s.Source)
		})
	}
}

func TestParseTOML(t *testing.T) {
	s, err := ParseTOML([]byte(`
input = "props.json"
output = "db.json"
sources = ["a.c", "b.c"]
`), SourceExplicit)
	require.NoError(t, err)

	assert.Equal(t, "props.json", s.Input)
	assert.Equal(t, "db.json", s.Output)
	assert.Equal(t, []string{"a.c", "b.c"}, s.Sources)
	assert.Equal(t, SourceExplicit, s.Source)
}

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML([]byte(`
input: props.json
sources:
  - a.c
  - b.c
`), SourceExplicit)
	require.NoError(t, err)

	assert.Equal(t, "props.json", s.Input)
	assert.Empty(t, s.Output)
	assert.Equal(t, []string{"a.c", "b.c"}, s.Sources)
}

func TestParse_Invalid(t *testing.T) {
	_, err := ParseTOML([]byte(`input = `), SourceExplicit)
	assert.Error(t, err)

	_, err = ParseYAML([]byte("input: [unclosed"), SourceExplicit)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := &Settings{Input: "base.json", Output: "base-out.json", Sources: []string{"a.c"}, Source: SourceUser}

	tests := []struct {
		name     string
		override *Settings
		expected Settings
	}{
		{
			name:     "nil override",
			override: nil,
			expected: Settings{Input: "base.json", Output: "base-out.json", Sources: []string{"a.c"}, Source: SourceUser},
		},
		{
			name:     "empty override keeps source",
			override: &Settings{Source: SourceProject},
			expected: Settings{Input: "base.json", Output: "base-out.json", Sources: []string{"a.c"}, Source: SourceUser},
		},
		{
			name:     "input wins",
			override: &Settings{Input: "proj.json", Source: SourceProject},
			expected: Settings{Input: "proj.json", Output: "base-out.json", Sources: []string{"a.c"}, Source: SourceProject},
		},
		{
			name:     "sources replace",
			override: &Settings{Sources: []string{"x.c", "y.c"}, Source: SourceFlags},
			expected: Settings{Input: "base.json", Output: "base-out.json", Sources: []string{"x.c", "y.c"}, Source: SourceFlags},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(base, tt.override)
			assert.Equal(t, tt.expected, *merged)
		})
	}
}

func TestMerge_DoesNotAliasSources(t *testing.T) {
	base := &Settings{Sources: []string{"a.c"}}
	merged := Merge(base, nil)
	merged.Sources[0] = "changed.c"

	assert.Equal(t, "a.c", base.Sources[0])
}

func TestMerge_NilBase(t *testing.T) {
	merged := Merge(nil, &Settings{Output: "o.json", Source: SourceFlags})
	assert.Equal(t, Settings{Output: "o.json", Source: SourceFlags}, *merged)
}

func TestLoad_Layers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	userPath := UserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0755))
	require.NoError(t, os.WriteFile(userPath, []byte(`output "user.json"
sources "user.c"`), 0644))

	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(ProjectConfigPath(projectDir), []byte(`input "project/props.json"`), 0644))

	explicit := filepath.Join(t.TempDir(), "override.toml")
	require.NoError(t, os.WriteFile(explicit, []byte(`sources = ["explicit.c"]`), 0644))

	s, err := Load(projectDir, explicit)
	require.NoError(t, err)

	assert.Equal(t, "project/props.json", s.Input)
	assert.Equal(t, "user.json", s.Output)
	assert.Equal(t, []string{"explicit.c"}, s.Sources)
	assert.Equal(t, SourceExplicit, s.Source)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, *Defaults(), *s)
	assert.Equal(t, ".vscode/c_cpp_properties.json", s.Input)
	assert.Equal(t, "./compile_commands.json", s.Output)
}

func TestLoad_MissingExplicit(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.kdl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidProjectFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(ProjectConfigPath(projectDir), []byte(`input "unterminated`), 0644))

	_, err := Load(projectDir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ProjectConfigFile)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ProjectConfigFile)
	want := &Settings{
		Input:   `C:\work\.vscode\c_cpp_properties.json`,
		Output:  "build/compile_commands.json",
		Sources: []string{"src/main.c", "src/with space.c"},
	}
	require.NoError(t, WriteFile(path, want))

	s, err := LoadProjectSettings(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, want.Input, s.Input)
	assert.Equal(t, want.Output, s.Output)
	assert.Equal(t, want.Sources, s.Sources)
}

func TestFormatKDL_SkipsEmpty(t *testing.T) {
	assert.Equal(t, "output \"o.json\"\n", FormatKDL(&Settings{Output: "o.json"}))
	assert.Empty(t, FormatKDL(&Settings{}))
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "default", SourceDefault.String())
	assert.Equal(t, "user", SourceUser.String())
	assert.Equal(t, "project", SourceProject.String())
	assert.Equal(t, "explicit", SourceExplicit.String())
	assert.Equal(t, "flags", SourceFlags.String())
	assert.Equal(t, "unknown", Source(99).String())
}

func TestConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	paths := ConfigPaths("/proj")
	assert.Equal(t, filepath.Join("/xdg", UserConfigDir, UserConfigFile), paths["user"])
	assert.Equal(t, filepath.Join("/proj", ProjectConfigFile), paths["project"])
}
