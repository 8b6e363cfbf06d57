package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/standardbeagle/ccprops2compdb/internal/compdb"
	"github.com/standardbeagle/ccprops2compdb/internal/config"
	"github.com/standardbeagle/ccprops2compdb/internal/logging"
)

// runFlags are the flags shared by generate, serve and init.
type runFlags struct {
	directory  string
	input      string
	output     string
	configPath string
	verbose    bool
	quiet      bool
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.directory, "directory", "d", "", "Path to c_cpp_properties.json (default: .vscode/c_cpp_properties.json)")
	fs.StringVarP(&f.input, "input", "i", "", "Alias of --directory")
	fs.StringVarP(&f.output, "output", "o", "", "Output path for compile_commands.json, - for stdout (default: ./compile_commands.json)")
	fs.StringVar(&f.configPath, "config", "", "Settings file (.kdl, .toml, .yaml) applied after the user and project files")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log debug details to stderr")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Only report errors")
}

// settings layers the flags over the settings files.
func (f *runFlags) settings(sources []string) (*config.Settings, error) {
	base, err := config.Load(cwdOrDot(), f.configPath)
	if err != nil {
		return nil, err
	}

	input := f.directory
	if input == "" {
		input = f.input
	}
	return config.Merge(base, &config.Settings{
		Input:   input,
		Output:  f.output,
		Sources: sources,
		Source:  config.SourceFlags,
	}), nil
}

func cwdOrDot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		usage(stderr)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args and reports the exit code to use when the command
// should stop, for example after --help.
func parseFlags(fs *pflag.FlagSet, args []string, stderr io.Writer) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0, false
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1, false
	}
	return 0, true
}

func cmdGenerate(args []string, stdout, stderr io.Writer) int {
	var flags runFlags
	var showVersion bool

	fs := newFlagSet("generate", stderr, printGenerateUsage)
	flags.register(fs)
	fs.BoolVarP(&showVersion, "version", "V", false, "Print version information")
	if code, ok := parseFlags(fs, args, stderr); !ok {
		return code
	}

	if showVersion {
		fmt.Fprintf(stdout, "ccprops2compdb version %s\n", version)
		return 0
	}

	logger := logging.NewForCLI(flags.verbose, flags.quiet)
	logging.SetDefault(logger)

	settings, err := flags.settings(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error loading settings: %v\n", err)
		return 1
	}
	logger.Debug("settings resolved",
		"input", settings.Input, "output", settings.Output, "sources", len(settings.Sources), "source", settings.Source.String())
	for layer, path := range config.ConfigPaths(cwdOrDot()) {
		logger.Debug("settings file", "layer", layer, "path", path)
	}

	resolver := compdb.NewResolver(compdb.WithLogger(logger))
	res, err := resolver.Build(settings.Input, settings.Sources)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := compdb.WriteFile(settings.Output, res.Database); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger.Info("compile commands written",
		"output", settings.Output, "mode", res.Mode.String(), "entries", len(res.Database), "skipped", len(res.Skipped))
	if !flags.quiet && settings.Output != compdb.StdoutPath {
		fmt.Fprintf(stdout, "%s has been generated.\n", settings.Output)
	}
	return 0
}

func printGenerateUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: ccprops2compdb [generate] [options] [sources...]

Reads c_cpp_properties.json and writes compile_commands.json. Sources are
only used when the configuration has no compileCommands field.

Options:
`)
}
