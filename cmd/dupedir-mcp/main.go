package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/dupedir/internal/version"
	"github.com/ludo-technologies/dupedir/mcp"
	"github.com/ludo-technologies/dupedir/service"
	mcpserver "github.com/mark3labs/mcp-go/server"
	flag "github.com/spf13/pflag"
)

const serverName = "dupedir"

func main() {
	configPath := flag.StringP("config", "c", os.Getenv("DUPEDIR_CONFIG"), "configuration file (default: discover .dupedir.toml from the scanned paths)")
	verbose := flag.BoolP("verbose", "v", false, "enable debug logging")
	flag.Parse()

	// MCP uses stdout for JSON-RPC
	logger := service.NewLogger(os.Stderr, *verbose)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewDependencies(logger, *configPath))

	logger.Info(fmt.Sprintf("Starting %s MCP server %s", serverName, version.Short()))
	logger.Info("Registered tools: " + mcp.ToolFindDuplicateDirs)

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
