package server

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		&mcp.Tool{
			Name:         "generate_compile_commands",
			Description:  "Convert c_cpp_properties.json into compile_commands.json. Merges the databases the configuration references or embeds, or generates one entry per given source file.",
			InputSchema:  generateInputSchema,
			OutputSchema: generateOutputSchema,
		},
		s.wrapGenerate,
	)

	s.mcpServer.AddTool(
		&mcp.Tool{
			Name:         "inspect_configuration",
			Description:  "Show how c_cpp_properties.json would be interpreted: the mode, the configuration in use and its compiler settings. Writes nothing.",
			InputSchema:  inspectInputSchema,
			OutputSchema: inspectOutputSchema,
		},
		s.wrapInspect,
	)
}

func (s *Server) wrapGenerate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GenerateInput
	if err := unmarshalArgs(req, &input); err != nil {
		return nil, err
	}

	_, output, err := s.handleGenerate(ctx, req, input)
	if err != nil {
		return errorResult(err), nil
	}
	return toCallToolResult(output)
}

func (s *Server) wrapInspect(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input InspectInput
	if err := unmarshalArgs(req, &input); err != nil {
		return nil, err
	}

	_, output, err := s.handleInspect(ctx, req, input)
	if err != nil {
		return errorResult(err), nil
	}
	return toCallToolResult(output)
}

// unmarshalArgs decodes tool arguments. A call without arguments decodes to
// the zero value.
func unmarshalArgs(req *mcp.CallToolRequest, v any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// toCallToolResult returns output as JSON text content.
func toCallToolResult(output any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(output)
	if err != nil {
		return errorResult(err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
