package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"a11ytree/internal/adapters/document"
	"a11ytree/internal/adapters/markup"
	"a11ytree/internal/application"
	"a11ytree/internal/application/commands"
	"a11ytree/internal/domain"
)

// RegisterReadTools adds the tools that inspect the session tree.
func RegisterReadTools(s *server.MCPServer, sess *Session) {
	s.AddTool(treeTool(), treeHandler(sess))
	s.AddTool(stateTool(), stateHandler(sess))
	s.AddTool(renderTool(), renderHandler(sess))
	s.AddTool(searchTool(), searchHandler(sess))
	s.AddTool(keysTool(), keysHandler(sess))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Show the loaded tree as an outline. The active node is marked with '>'; ▶ marks collapsed branches and ▼ expanded ones."),
		mcp.WithBoolean("all",
			mcp.Description("Include nodes hidden inside collapsed branches"),
		),
	)
}

func treeHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		all := req.GetBool("all", false)

		var buf bytes.Buffer
		err := sess.With(func(e *application.Engine) error {
			return markup.WriteOutline(&buf, e.Tree(), all)
		})
		if err != nil {
			return toolError(err)
		}
		if buf.Len() == 0 {
			return mcp.NewToolResultText("The tree is empty."), nil
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- state ---

func stateTool() mcp.Tool {
	return mcp.NewTool("state",
		mcp.WithDescription("Describe the active node: path, label, level, and expansion state."),
	)
}

func stateHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var text string
		err := sess.With(func(e *application.Engine) error {
			text = describe(e.Active())
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- render ---

func renderTool() mcp.Tool {
	return mcp.NewTool("render",
		mcp.WithDescription("Render the loaded tree with its current state as HTML (ARIA tree-view markup), YAML, or JSON."),
		mcp.WithString("format",
			mcp.Description("Output format: html (default), yaml, or json"),
			mcp.Enum("html", "yaml", "json"),
		),
	)
}

func renderHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format := req.GetString("format", "html")

		var buf bytes.Buffer
		err := sess.With(func(e *application.Engine) error {
			if format == "html" {
				return markup.Render(&buf, e.Tree(), e.Options())
			}
			f, err := document.ParseFormat(format)
			if err != nil {
				return err
			}
			return document.Encode(&buf, e.Tree(), f)
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search node labels with fuzzy matching, including nodes inside collapsed branches. Returns node paths usable with the activate tool."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)"),
		),
	)
}

func searchHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		var results []commands.SearchResult
		err := sess.With(func(e *application.Engine) error {
			cmd := commands.NewSearchCommand(e.Tree(), query)
			cmd.Limit = req.GetInt("limit", 20)
			var err error
			results, err = cmd.Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s\n", r.Path, r.Trail)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- keys ---

func keysTool() mcp.Tool {
	return mcp.NewTool("keys",
		mcp.WithDescription("List the navigation commands and the keys bound to them. Keys and command names are both accepted by the navigate tool."),
	)
}

func keysHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keys := sess.Keys()

		var sb strings.Builder
		for _, cmd := range domain.Commands {
			fmt.Fprintf(&sb, "%-10s %s\n", cmd, strings.Join(keys.Keys(cmd), ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func describe(n *domain.Node) string {
	if n == nil {
		return "No active node."
	}

	state := "leaf"
	switch {
	case n.IsExpanded():
		state = "expanded"
	case n.HasChildren:
		state = "collapsed"
	}
	return fmt.Sprintf("%s  %s  (level %d, %s)", n.Path(), n.LabelPath(" / "), n.Depth, state)
}
