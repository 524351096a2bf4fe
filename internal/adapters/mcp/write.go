package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"a11ytree/internal/application"
	"a11ytree/internal/application/commands"
	"a11ytree/internal/domain"
)

// RegisterWriteTools adds the tools that load the tree and change its state.
func RegisterWriteTools(s *server.MCPServer, sess *Session) {
	s.AddTool(loadTool(), loadHandler(sess))
	s.AddTool(reloadTool(), reloadHandler(sess))
	s.AddTool(navigateTool(), navigateHandler(sess))
	s.AddTool(activateTool(), activateHandler(sess))
	s.AddTool(toggleTool(), toggleHandler(sess))
}

// --- load ---

func loadTool() mcp.Tool {
	return mcp.NewTool("load",
		mcp.WithDescription("Load a tree to navigate. Accepts a directory, an HTML page with nested lists, a YAML or JSON nested list document, or a stored tree as trees.db#name. All branches start collapsed with the first node active."),
		mcp.WithString("source",
			mcp.Description("Source location"),
			mcp.Required(),
		),
	)
}

func loadHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		location := req.GetString("source", "")
		if location == "" {
			return toolError(fmt.Errorf("source is required"))
		}

		tree, err := sess.Load(ctx, location)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Loaded %d nodes (%d at the top level).", tree.Len(), len(tree.Items))), nil
	}
}

// --- reload ---

func reloadTool() mcp.Tool {
	return mcp.NewTool("reload",
		mcp.WithDescription("Read the current source again. Expansion state and the cursor are reset."),
	)
}

func reloadHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := sess.Reload(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Reloaded %d nodes.", tree.Len())), nil
	}
}

// --- navigate ---

func navigateTool() mcp.Tool {
	return mcp.NewTool("navigate",
		mcp.WithDescription("Send navigation commands, as a keyboard user would. Commands: MoveDown, MoveUp, MoveRight, MoveLeft, Activate, Home, End; bound keys such as down or enter also work."),
		mcp.WithString("commands",
			mcp.Description("Comma or space separated commands, e.g. \"right, down, enter\""),
			mcp.Required(),
		),
	)
}

func navigateHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmds, err := application.ParseCommands(req.GetString("commands", ""), sess.Keys())
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		err = sess.With(func(e *application.Engine) error {
			result, err := commands.NewNavigateCommand(e, cmds...).Execute(ctx)
			if err != nil {
				return err
			}
			for _, step := range result.Steps {
				fmt.Fprintf(&sb, "%-10s %s\n", step.Command, step.Effect)
			}
			writeEvents(&sb, sess.drainEvents())
			sb.WriteString("Active: ")
			sb.WriteString(describe(result.Active))
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- activate ---

func activateTool() mcp.Tool {
	return mcp.NewTool("activate",
		mcp.WithDescription("Move the cursor to a node by path, as a pointer click on it would. Paths come from the search tool, e.g. 2.1.3."),
		mcp.WithString("path",
			mcp.Description("Node path"),
			mcp.Required(),
		),
	)
}

func activateHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return pointerAction(sess, req.GetString("path", ""), (*application.Engine).Click)
	}
}

// --- toggle ---

func toggleTool() mcp.Tool {
	return mcp.NewTool("toggle",
		mcp.WithDescription("Expand or collapse a branch by path without moving the cursor, as a click on its toggle would."),
		mcp.WithString("path",
			mcp.Description("Node path"),
			mcp.Required(),
		),
	)
}

func toggleHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return pointerAction(sess, req.GetString("path", ""), (*application.Engine).Toggle)
	}
}

func pointerAction(sess *Session, path string, action func(*application.Engine, *domain.Node) domain.Effect) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	err := sess.With(func(e *application.Engine) error {
		n, err := application.ValidateNodePath(e.Tree(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(&sb, "%s\n", action(e, n))
		writeEvents(&sb, sess.drainEvents())
		sb.WriteString("Active: ")
		sb.WriteString(describe(e.Active()))
		return nil
	})
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func writeEvents(sb *strings.Builder, events []string) {
	for _, ev := range events {
		sb.WriteString("Hook: ")
		sb.WriteString(ev)
		sb.WriteByte('\n')
	}
}
