package main

import (
	"fmt"
	"io"
	"os"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the process exit code. Anything
// that is not a known subcommand is handed to generate, so
// `ccprops2compdb main.c util.c` works without naming it.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "generate":
			return cmdGenerate(args[1:], stdout, stderr)
		case "serve":
			return cmdServe(args[1:], stdout, stderr)
		case "init":
			return cmdInit(args[1:], stdout, stderr)
		case "version":
			return cmdVersion(args[1:], stdout, stderr)
		case "help":
			printUsage(stdout)
			return 0
		}
	}
	return cmdGenerate(args, stdout, stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `ccprops2compdb - Generate compile_commands.json from c_cpp_properties.json

Usage:
  ccprops2compdb [generate] [options] [sources...]
  ccprops2compdb <command> [options]

Commands:
  generate     Write compile_commands.json (default command)
  serve        Start the MCP server on stdio
  init         Write a project settings file (.ccprops2compdb.kdl)
  version      Show version (--check looks for a newer release)
  help         Show this help

Modes:
  If the configuration has a compileCommands field, the databases it lists
  (or the entries it embeds) are merged. Otherwise one entry is generated
  per source file from compilerPath, includePath, defines and cppStandard.
  A properties file that is itself a JSON array is copied unchanged.

Run 'ccprops2compdb generate --help' for the generate options.
`)
}
