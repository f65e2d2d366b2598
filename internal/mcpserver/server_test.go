package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/contrib-graph/internal/domain"
)

type fakeContributions struct {
	years  map[string]domain.YearContributions
	order  []string
	err    error
	shapes []domain.Shape
}

func (f *fakeContributions) ListYears(ctx context.Context, username string) ([]domain.YearLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	links := make([]domain.YearLink, 0, len(f.order))
	for _, y := range f.order {
		links = append(links, domain.YearLink{Path: "/" + username + "?from=" + y + "-01-01&tab=contributions", Label: y})
	}
	return links, nil
}

func (f *fakeContributions) FetchAllYears(ctx context.Context, username string, shape domain.Shape) (domain.Dataset, error) {
	f.shapes = append(f.shapes, shape)
	if f.err != nil {
		return nil, f.err
	}
	ds := domain.FlatDataset{}
	for _, y := range f.order {
		ds.Years = append(ds.Years, f.years[y].YearSummary)
		ds.Contributions = append(ds.Contributions, f.years[y].Contributions...)
	}
	return ds, nil
}

func (f *fakeContributions) FetchOneYear(ctx context.Context, username, year string) (domain.YearContributions, error) {
	if f.err != nil {
		return domain.YearContributions{}, f.err
	}
	y, ok := f.years[year]
	if !ok {
		return domain.YearContributions{}, fmt.Errorf("failed to fetch %s contributions for %s: %w", year, username, domain.ErrYearNotFound)
	}
	return y, nil
}

func testServer() (*Server, *fakeContributions) {
	fake := &fakeContributions{
		order: []string{"2023"},
		years: map[string]domain.YearContributions{
			"2023": {
				YearSummary: domain.YearSummary{Year: "2023", Total: 5, Range: domain.DateRange{Start: "2023-01-01", End: "2023-01-02"}},
				Contributions: []domain.DayRecord{
					{Date: "2023-01-01", Count: 0, Color: "#ebedf0", Intensity: 0},
					{Date: "2023-01-02", Count: 5, Color: "#40c463", Intensity: 2},
				},
			},
		},
	}
	srv := New(fake, "test")
	srv.now = func() time.Time { return time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC) }
	return srv, fake
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var (
		result *mcp.CallToolResult
		err    error
	)
	switch name {
	case "list_years":
		result, err = srv.listYears(context.Background(), req)
	case "get_contributions":
		result, err = srv.getContributions(context.Background(), req)
	case "get_terminal_graph":
		result, err = srv.getTerminalGraph(context.Background(), req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	require.NoError(t, err)
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListYears(t *testing.T) {
	srv, fake := testServer()
	fake.order = []string{"2024", "2023"}

	r := callTool(t, srv, "list_years", map[string]any{"username": "octocat"})

	assert.False(t, r.IsError)
	assert.Equal(t, "2024\n2023", resultText(r))
}

func TestListYears_Empty(t *testing.T) {
	srv, fake := testServer()
	fake.order = nil

	r := callTool(t, srv, "list_years", map[string]any{"username": "octocat"})

	assert.False(t, r.IsError)
	assert.Equal(t, "no years found", resultText(r))
}

func TestGetContributions(t *testing.T) {
	testCases := []struct {
		name     string
		args     map[string]any
		isError  bool
		contains string
	}{
		{name: "missing username", args: map[string]any{}, isError: true, contains: "username"},
		{name: "single year", args: map[string]any{"username": "octocat", "year": "2023"}, contains: `"year": "2023"`},
		{name: "unknown year", args: map[string]any{"username": "octocat", "year": "1999"}, isError: true, contains: "year not found"},
		{name: "all years", args: map[string]any{"username": "octocat"}, contains: `"years": [`},
		{name: "bad format", args: map[string]any{"username": "octocat", "format": "tree"}, isError: true, contains: "invalid format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := testServer()

			r := callTool(t, srv, "get_contributions", tc.args)

			assert.Equal(t, tc.isError, r.IsError)
			assert.Contains(t, resultText(r), tc.contains)
		})
	}
}

func TestGetContributions_DefaultsToFlat(t *testing.T) {
	srv, fake := testServer()

	r := callTool(t, srv, "get_contributions", map[string]any{"username": "octocat"})
	require.False(t, r.IsError)

	var ds domain.FlatDataset
	require.NoError(t, json.Unmarshal([]byte(resultText(r)), &ds))
	assert.Len(t, ds.Contributions, 2)
	assert.Equal(t, []domain.Shape{domain.ShapeFlat}, fake.shapes)
}

func TestGetTerminalGraph(t *testing.T) {
	srv, _ := testServer()

	r := callTool(t, srv, "get_terminal_graph", map[string]any{"username": "octocat", "compact": true})

	require.False(t, r.IsError)
	text := resultText(r)
	assert.Contains(t, text, "@octocat — 5 contributions in 2023")
	assert.Contains(t, text, "  M  ▒")
	assert.NotContains(t, text, "\x1b[")
}

func TestGetTerminalGraph_Error(t *testing.T) {
	srv, fake := testServer()
	fake.err = &domain.FetchError{Path: "/octocat?tab=contributions", Status: 503}

	r := callTool(t, srv, "get_terminal_graph", map[string]any{"username": "octocat", "year": "2023"})

	assert.True(t, r.IsError)
	assert.Equal(t, "failed to fetch /octocat?tab=contributions: 503", resultText(r))
}
