package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	kdl "github.com/sblinch/kdl-go"
	"gopkg.in/yaml.v3"
)

const (
	ProjectConfigFile = ".ccprops2compdb.kdl"
	UserConfigDir     = "ccprops2compdb"
	UserConfigFile    = "config.kdl"
)

// fileSettings is the on-disk layout shared by every supported format:
//
//	input "cfg/c_cpp_properties.json"
//	output "build/compile_commands.json"
//	sources "src/main.c" "src/util.c"
type fileSettings struct {
	Input   string   `kdl:"input" toml:"input" yaml:"input"`
	Output  string   `kdl:"output" toml:"output" yaml:"output"`
	Sources []string `kdl:"sources" toml:"sources" yaml:"sources"`
}

// UserConfigPath returns the path to the user settings file.
func UserConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, UserConfigDir, UserConfigFile)
}

// ProjectConfigPath returns the path to the project settings file in dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFile)
}

// ConfigPaths returns the settings file locations that Load consults.
func ConfigPaths(projectDir string) map[string]string {
	return map[string]string{
		"user":    UserConfigPath(),
		"project": ProjectConfigPath(projectDir),
	}
}

// LoadUserSettings loads the user settings file, if any.
func LoadUserSettings() (*Settings, error) {
	path := UserConfigPath()
	if path == "" {
		return &Settings{}, nil
	}
	return loadOptional(path, SourceUser)
}

// LoadProjectSettings loads the project settings file in dir, if any.
func LoadProjectSettings(dir string) (*Settings, error) {
	return loadOptional(ProjectConfigPath(dir), SourceProject)
}

// LoadExplicitSettings loads a settings file named on the command line. The
// file must exist.
func LoadExplicitSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return parseFile(path, data, SourceExplicit)
}

func loadOptional(path string, source Source) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return parseFile(path, data, source)
}

func parseFile(path string, data []byte, source Source) (*Settings, error) {
	var (
		s   *Settings
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		s, err = ParseTOML(data, source)
	case ".yaml", ".yml":
		s, err = ParseYAML(data, source)
	default:
		s, err = ParseKDL(data, source)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// ParseKDL parses KDL settings.
func ParseKDL(data []byte, source Source) (*Settings, error) {
	var fs fileSettings
	if err := kdl.Unmarshal(data, &fs); err != nil {
		return nil, err
	}
	return fs.settings(source), nil
}

// ParseTOML parses TOML settings.
func ParseTOML(data []byte, source Source) (*Settings, error) {
	var fs fileSettings
	if err := toml.Unmarshal(data, &fs); err != nil {
		return nil, err
	}
	return fs.settings(source), nil
}

// ParseYAML parses YAML settings.
func ParseYAML(data []byte, source Source) (*Settings, error) {
	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, err
	}
	return fs.settings(source), nil
}

func (fs fileSettings) settings(source Source) *Settings {
	return &Settings{
		Input:   fs.Input,
		Output:  fs.Output,
		Sources: fs.Sources,
		Source:  source,
	}
}

// WriteFile writes s to path as KDL, creating the parent directory.
func WriteFile(path string, s *Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(FormatKDL(s)), 0644)
}

// FormatKDL renders s in the layout ParseKDL reads back. Empty fields are
// left out.
func FormatKDL(s *Settings) string {
	var b strings.Builder

	if s.Input != "" {
		b.WriteString("input " + strconv.Quote(s.Input) + "\n")
	}
	if s.Output != "" {
		b.WriteString("output " + strconv.Quote(s.Output) + "\n")
	}
	if len(s.Sources) > 0 {
		b.WriteString("sources")
		for _, src := range s.Sources {
			b.WriteString(" " + strconv.Quote(src))
		}
		b.WriteString("\n")
	}

	return b.String()
}
