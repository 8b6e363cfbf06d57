package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/standardbeagle/ccprops2compdb/internal/compdb"
	"github.com/standardbeagle/ccprops2compdb/internal/config"
	"github.com/standardbeagle/ccprops2compdb/internal/properties"
)

// GenerateInput is the input for the generate_compile_commands tool.
type GenerateInput struct {
	Input   string   `json:"input,omitempty"`
	Output  string   `json:"output,omitempty"`
	Sources []string `json:"sources,omitempty"`
}

// GenerateOutput is the output for the generate_compile_commands tool.
type GenerateOutput struct {
	Output  string   `json:"output"`
	Mode    string   `json:"mode"`
	Entries int      `json:"entries"`
	Skipped []string `json:"skipped"`
}

func (s *Server) handleGenerate(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	run := config.Merge(s.settings, &config.Settings{
		Input:   input.Input,
		Output:  input.Output,
		Sources: input.Sources,
		Source:  config.SourceFlags,
	})

	// stdout carries the protocol
	if run.Output == compdb.StdoutPath {
		return nil, GenerateOutput{}, errors.New("output must be a file path when running as an MCP server")
	}

	res, err := s.resolver.Build(run.Input, run.Sources)
	if err != nil {
		return nil, GenerateOutput{}, err
	}
	if err := compdb.WriteFile(run.Output, res.Database); err != nil {
		return nil, GenerateOutput{}, err
	}

	s.logger.Info("compile commands written", "output", run.Output, "mode", res.Mode.String(), "entries", len(res.Database))

	skipped := res.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return nil, GenerateOutput{
		Output:  run.Output,
		Mode:    res.Mode.String(),
		Entries: len(res.Database),
		Skipped: skipped,
	}, nil
}

// InspectInput is the input for the inspect_configuration tool.
type InspectInput struct {
	Input  string `json:"input,omitempty"`
	Source string `json:"source,omitempty"`
}

// InspectOutput is the output for the inspect_configuration tool.
type InspectOutput struct {
	Input              string               `json:"input"`
	Shape              string               `json:"shape"`
	Mode               string               `json:"mode"`
	Configuration      string               `json:"configuration,omitempty"`
	ConfigurationCount int                  `json:"configuration_count"`
	Settings           *properties.Settings `json:"settings,omitempty"`
	References         []string             `json:"references,omitempty"`
	EmbeddedEntries    int                  `json:"embedded_entries,omitempty"`
	Command            string               `json:"command,omitempty"`
}

func (s *Server) handleInspect(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input InspectInput,
) (*mcp.CallToolResult, InspectOutput, error) {
	path := input.Input
	if path == "" {
		path = s.settings.Input
	}

	doc, err := properties.Load(path)
	if err != nil {
		return nil, InspectOutput{}, err
	}
	plan, err := compdb.Resolve(doc)
	if err != nil {
		return nil, InspectOutput{}, fmt.Errorf("%s: %w", path, err)
	}

	out := InspectOutput{
		Input:              path,
		Shape:              doc.Shape.String(),
		Mode:               plan.Mode.String(),
		ConfigurationCount: doc.ConfigurationCount,
	}
	if doc.Configuration != nil {
		out.Configuration = doc.Configuration.Name
	}

	switch plan.Mode {
	case compdb.ModePassThrough, compdb.ModeMergeEmbedded:
		out.EmbeddedEntries = len(plan.Entries)
	case compdb.ModeMergeReferenced:
		out.References = plan.References
	case compdb.ModeGenerate:
		settings := plan.Settings
		out.Settings = &settings
		if input.Source != "" {
			if !settings.HasCompilerPath() {
				return nil, InspectOutput{}, compdb.ErrMissingCompilerPath
			}
			out.Command = compdb.NewSynthesizer(settings, s.resolver.Directory()).Command(input.Source)
		}
	}

	return nil, out, nil
}
