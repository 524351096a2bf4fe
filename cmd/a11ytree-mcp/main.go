package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "a11ytree/internal/adapters/mcp"
	"a11ytree/internal/adapters/source"
	"a11ytree/internal/config"
	"a11ytree/internal/logger"
	"a11ytree/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "config file (default "+config.ConfigPath()+")")
	sourceFlag := flag.String("source", "", "tree to load at startup (file, directory or db#tree)")
	htmlRoot := flag.String("html-root", "", "id of the list to read from an HTML file")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configFlag != "" {
		cfg, err = config.LoadFrom(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("a11ytree-mcp: %v", err)
	}
	if err := logger.Init(cfg.LoggerOptions("a11ytree-mcp")); err != nil {
		log.Fatalf("a11ytree-mcp: %v", err)
	}
	defer logger.Close()

	keys, err := cfg.KeyMap()
	if err != nil {
		log.Fatalf("a11ytree-mcp: %v", err)
	}

	open := func(location string) (ports.TreeSource, error) {
		return source.Open(location, source.Options{HTMLRootID: *htmlRoot})
	}
	sess := mcpadapter.NewSession(open, keys, cfg.EngineOptions()...)

	if *sourceFlag != "" {
		if _, err := sess.Load(context.Background(), *sourceFlag); err != nil {
			log.Fatalf("a11ytree-mcp: %v", err)
		}
	}

	mcpServer := server.NewMCPServer(
		"a11ytree-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, sess)
	mcpadapter.RegisterWriteTools(mcpServer, sess)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("a11ytree-mcp: %v", err)
	}
}
