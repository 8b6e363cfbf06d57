// Package config holds the tool's own settings: which properties file to
// read, where to write the database and which sources to generate entries
// for. Settings come from layered files and are overridden by flags.
package config

import (
	"github.com/standardbeagle/ccprops2compdb/internal/compdb"
	"github.com/standardbeagle/ccprops2compdb/internal/properties"
)

// Settings are the resolved inputs of one run.
type Settings struct {
	Input   string
	Output  string
	Sources []string
	Source  Source
}

// Source indicates where a Settings value came from.
type Source int

const (
	SourceDefault Source = iota
	SourceUser
	SourceProject
	SourceExplicit
	SourceFlags
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceUser:
		return "user"
	case SourceProject:
		return "project"
	case SourceExplicit:
		return "explicit"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() *Settings {
	return &Settings{
		Input:  properties.DefaultPath,
		Output: compdb.DefaultOutput,
		Source: SourceDefault,
	}
}

// IsZero reports whether no field is set.
func (s *Settings) IsZero() bool {
	return s == nil || (s.Input == "" && s.Output == "" && len(s.Sources) == 0)
}
