// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes contribution calendars as tools via stdio transport.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/render"
)

// Contributions is the use case the tools call into.
type Contributions interface {
	ListYears(ctx context.Context, username string) ([]domain.YearLink, error)
	FetchAllYears(ctx context.Context, username string, shape domain.Shape) (domain.Dataset, error)
	FetchOneYear(ctx context.Context, username, year string) (domain.YearContributions, error)
}

// Server wraps the MCP server with the contribution tools.
type Server struct {
	mcp *server.MCPServer
	svc Contributions
	now func() time.Time
}

// New creates a new MCP server with all tools registered.
func New(svc Contributions, version string) *Server {
	s := &Server{svc: svc, now: time.Now}

	s.mcp = server.NewMCPServer(
		"contrib-graph",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_years",
		mcp.WithDescription("List the years for which a user has a contribution calendar, newest first."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Account name")),
	), s.listYears)

	s.mcp.AddTool(mcp.NewTool("get_contributions",
		mcp.WithDescription("Return daily contribution records as JSON. "+
			"With year set only that year is returned, otherwise every year is assembled."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Account name")),
		mcp.WithString("year", mcp.Description("Optional year label (e.g. 2023)")),
		mcp.WithString("format", mcp.Description("Shape of the multi-year dataset. Defaults to 'flat'."), mcp.Enum("flat", "nested")),
	), s.getContributions)

	s.mcp.AddTool(mcp.NewTool("get_terminal_graph",
		mcp.WithDescription("Render one year as a plain-text calendar without escape sequences."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Account name")),
		mcp.WithString("year", mcp.Description("Year label. Defaults to the current year.")),
		mcp.WithString("color", mcp.Description("Color name, kept for parity with the HTTP endpoint."), mcp.Enum(render.TerminalColors()...)),
		mcp.WithBoolean("compact", mcp.Description("Only render Mon, Wed and Fri")),
	), s.getTerminalGraph)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listYears(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	links, err := s.svc.ListYears(ctx, username)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(links) == 0 {
		return mcp.NewToolResultText("no years found"), nil
	}
	labels := make([]string, 0, len(links))
	for _, l := range links {
		labels = append(labels, l.Label)
	}
	return mcp.NewToolResultText(strings.Join(labels, "\n")), nil
}

func (s *Server) getContributions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result any
	if year := req.GetString("year", ""); year != "" {
		result, err = s.svc.FetchOneYear(ctx, username, year)
	} else {
		shape, perr := domain.ParseShape(req.GetString("format", ""))
		if perr != nil {
			return mcp.NewToolResultError(perr.Error()), nil
		}
		result, err = s.svc.FetchAllYears(ctx, username, shape)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getTerminalGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	year := req.GetString("year", strconv.Itoa(s.now().Year()))

	result, err := s.svc.FetchOneYear(ctx, username, year)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	opts := render.TerminalOptions{
		Color:   req.GetString("color", ""),
		Compact: req.GetBool("compact", false),
		NoColor: true,
	}
	if err := render.Terminal(&buf, username, year, result.Contributions, opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
