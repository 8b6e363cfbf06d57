package main

import (
	"fmt"
	"io"

	"github.com/tcnksm/go-latest"
)

// checkLatest looks up the newest tagged release. Replaced in tests.
var checkLatest = func(current string) (*latest.CheckResponse, error) {
	githubTag := &latest.GithubTag{
		Owner:      "standardbeagle",
		Repository: "ccprops2compdb",
	}
	return latest.Check(githubTag, current)
}

func cmdVersion(args []string, stdout, stderr io.Writer) int {
	var check bool

	fs := newFlagSet("version", stderr, printVersionUsage)
	fs.BoolVar(&check, "check", false, "Check GitHub for a newer release")
	if code, ok := parseFlags(fs, args, stderr); !ok {
		return code
	}

	fmt.Fprintf(stdout, "ccprops2compdb version %s\n", version)
	if !check {
		return 0
	}

	// a failed lookup is reported but never fails the command
	res, err := checkLatest(version)
	if err != nil {
		fmt.Fprintf(stderr, "Could not check for updates: %v\n", err)
		return 0
	}
	if res.Outdated {
		fmt.Fprintf(stdout, "A new version is available: %s (you have %s)\n", res.Current, version)
		fmt.Fprintln(stdout, "Download it from https://github.com/standardbeagle/ccprops2compdb/releases")
	} else {
		fmt.Fprintf(stdout, "You are using the latest version: %s\n", version)
	}
	return 0
}

func printVersionUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: ccprops2compdb version [--check]

Options:
`)
}
