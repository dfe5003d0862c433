package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/floatwin/internal/registry"
)

const (
	ServerName    = "floatwin"
	ServerVersion = "0.1.0"
)

// Server exposes one in-memory window registry over MCP.
type Server struct {
	mcpServer *mcpsdk.Server
	reg       *registry.Registry
	logger    *slog.Logger
}

// NewServer wraps reg. A nil logger discards output.
func NewServer(reg *registry.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		reg:    reg,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Registry returns the registry the server mutates.
func (s *Server) Registry() *registry.Registry {
	return s.reg
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open a floating window. Without explicit x/y it is placed at the first free grid position; without width/height it uses the size preset or the default size.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window and remove it from its stack.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window to the dock. A maximized window gets its original geometry back first.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Toggle maximize: fill the viewport (minus the maximize margin), or restore the saved geometry when already maximized.",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized window and bring it to front.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a window to front and make it active.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "update_window",
		Description: "Change a window's title, icon, type, content, position or size. Omitted fields are left alone.",
	}, s.handleUpdateWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all windows in open order, plus stacks, the active window and the viewport.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "organize_windows",
		Description: "Arrange every window in a uniform grid at the default size.",
	}, s.handleOrganize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_all",
		Description: "Minimize every window.",
	}, s.handleMinimizeAll)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_all",
		Description: "Restore every minimized window.",
	}, s.handleRestoreAll)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_all",
		Description: "Close every window. Requires confirm: true.",
	}, s.handleCloseAll)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "create_stack",
		Description: "Create an empty named stack.",
	}, s.handleCreateStack)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "group_into_stacks",
		Description: "Group every window into stacks by creation day, type, responsible person or priority.",
	}, s.handleGroupIntoStacks)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "add_to_stack",
		Description: "Move a window into a stack, leaving any previous stack.",
	}, s.handleAddToStack)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_from_stack",
		Description: "Take a window out of its stack.",
	}, s.handleRemoveFromStack)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "convert_to_task",
		Description: "Attach task metadata to a window. Missing fields take the configured defaults.",
	}, s.handleConvertToTask)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "complete_task",
		Description: "Mark a window's task as completed.",
	}, s.handleCompleteTask)
}
