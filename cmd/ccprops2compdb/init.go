package main

import (
	"fmt"
	"io"
	"os"

	"github.com/standardbeagle/ccprops2compdb/internal/config"
)

func cmdInit(args []string, stdout, stderr io.Writer) int {
	var input, output string
	var force bool

	fs := newFlagSet("init", stderr, printInitUsage)
	fs.StringVarP(&input, "directory", "d", "", "Input path to record (default: .vscode/c_cpp_properties.json)")
	fs.StringVarP(&output, "output", "o", "", "Output path to record (default: ./compile_commands.json)")
	fs.BoolVarP(&force, "force", "f", false, "Overwrite an existing settings file")
	if code, ok := parseFlags(fs, args, stderr); !ok {
		return code
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "Error getting current directory: %v\n", err)
		return 1
	}

	path := config.ProjectConfigPath(cwd)
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(stderr, "Error: %s already exists (use --force to overwrite)\n", path)
		return 1
	}

	settings := config.Merge(config.Defaults(), &config.Settings{
		Input:   input,
		Output:  output,
		Sources: fs.Args(),
		Source:  config.SourceFlags,
	})
	if err := config.WriteFile(path, settings); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return 0
}

func printInitUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: ccprops2compdb init [options] [sources...]

Writes .ccprops2compdb.kdl in the current directory. Later runs read it
before applying command line flags.

Options:
`)
}
