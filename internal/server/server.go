// Package server exposes compile command generation as MCP tools so editors
// and agents can refresh compile_commands.json without shelling out.
package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/standardbeagle/ccprops2compdb/internal/compdb"
	"github.com/standardbeagle/ccprops2compdb/internal/config"
	"github.com/standardbeagle/ccprops2compdb/internal/logging"
)

const serverName = "ccprops2compdb"

// Server is the ccprops2compdb MCP server.
type Server struct {
	mcpServer *mcp.Server
	resolver  *compdb.Resolver
	settings  *config.Settings
	logger    logging.Logger
}

// New creates a Server. settings supplies the input, output and sources used
// when a tool call leaves them out.
func New(settings *config.Settings, version string, logger logging.Logger) *Server {
	if settings == nil {
		settings = config.Defaults()
	}
	if logger == nil {
		logger = logging.Default()
	}

	s := &Server{
		resolver: compdb.NewResolver(compdb.WithLogger(logger)),
		settings: settings,
		logger:   logger,
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		&mcp.ServerOptions{
			Capabilities: &mcp.ServerCapabilities{
				Tools: &mcp.ToolCapabilities{},
			},
		},
	)
	s.registerTools()

	return s
}

// RunStdio serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("ccprops2compdb MCP server running", "transport", "stdio", "directory", s.resolver.Directory())
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// CallTool calls a tool handler directly, bypassing the protocol.
func (s *Server) CallTool(ctx context.Context, toolName string, args map[string]any) (any, error) {
	switch toolName {
	case "generate_compile_commands":
		input := GenerateInput{
			Input:   getStringArg(args, "input"),
			Output:  getStringArg(args, "output"),
			Sources: getStringSliceArg(args, "sources"),
		}
		_, result, err := s.handleGenerate(ctx, nil, input)
		return result, err

	case "inspect_configuration":
		input := InspectInput{
			Input:  getStringArg(args, "input"),
			Source: getStringArg(args, "source"),
		}
		_, result, err := s.handleInspect(ctx, nil, input)
		return result, err

	default:
		return nil, fmt.Errorf("unknown tool: %s", toolName)
	}
}

func getStringArg(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getStringSliceArg(args map[string]any, key string) []string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return nil
}
