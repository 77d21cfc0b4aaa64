package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"devenv/internal/dependency"
	"devenv/internal/detection"
	"devenv/pkg/logging"
)

// ToolDetector runs detection over the whole catalog.
type ToolDetector interface {
	DetectAll(ctx context.Context) ([]detection.Result, error)
}

// Server exposes dependency resolution and tool detection over MCP.
type Server struct {
	service   *dependency.Service
	detector  ToolDetector
	mcpServer *server.MCPServer
}

// New creates a Server and registers its tools.
func New(service *dependency.Service, detector ToolDetector, version string) *Server {
	s := &Server{
		service:  service,
		detector: detector,
		mcpServer: server.NewMCPServer(
			"devenv",
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP on stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	logging.Info("MCPServer", "Serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	resolveTool := mcp.NewTool("resolve_installation_order",
		mcp.WithDescription("Order tool IDs so that every tool comes after the tools it depends on"),
		mcp.WithString("tool_ids",
			mcp.Required(),
			mcp.Description("Comma separated tool IDs, e.g. \"uv,python\""),
		),
	)
	s.mcpServer.AddTool(resolveTool, s.handleResolveInstallationOrder)

	treeTool := mcp.NewTool("get_dependency_tree",
		mcp.WithDescription("Get the dependency tree of a tool with installation status"),
		mcp.WithString("tool_id",
			mcp.Required(),
			mcp.Description("ID of the root tool"),
		),
	)
	s.mcpServer.AddTool(treeTool, s.handleGetDependencyTree)

	reverseTool := mcp.NewTool("get_reverse_dependencies",
		mcp.WithDescription("List the tools that directly depend on a tool"),
		mcp.WithString("tool_id",
			mcp.Required(),
			mcp.Description("ID of the tool"),
		),
	)
	s.mcpServer.AddTool(reverseTool, s.handleGetReverseDependencies)

	detectTool := mcp.NewTool("detect_tools",
		mcp.WithDescription("Detect which catalog tools are installed, with versions and config file status"),
		mcp.WithBoolean("installed_only",
			mcp.Description("Only return installed tools (default: false)"),
		),
	)
	s.mcpServer.AddTool(detectTool, s.handleDetectTools)
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleResolveInstallationOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("tool_ids")
	if err != nil {
		return mcp.NewToolResultError("tool_ids argument is required"), nil
	}
	ids := splitIDs(raw)
	logging.Debug("MCPServer", "resolve_installation_order %v", ids)

	order, err := s.service.ResolveInstallationOrder(ctx, ids)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if order == nil {
		order = []string{}
	}
	return jsonResult(map[string]interface{}{"order": order})
}

func (s *Server) handleGetDependencyTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("tool_id")
	if err != nil {
		return mcp.NewToolResultError("tool_id argument is required"), nil
	}

	tree, err := s.service.DependencyTree(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tree)
}

func (s *Server) handleGetReverseDependencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("tool_id")
	if err != nil {
		return mcp.NewToolResultError("tool_id argument is required"), nil
	}

	dependents, err := s.service.ReverseDependencies(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if dependents == nil {
		dependents = []dependency.Dependent{}
	}
	return jsonResult(dependents)
}

func (s *Server) handleDetectTools(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	installedOnly := request.GetBool("installed_only", false)

	results, err := s.detector.DetectAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Detection failed: %v", err)), nil
	}

	if installedOnly {
		filtered := make([]detection.Result, 0, len(results))
		for _, r := range results {
			if r.Installed {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	return jsonResult(results)
}
