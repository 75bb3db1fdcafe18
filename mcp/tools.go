package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names
const (
	ToolFindDuplicateDirs = "find_duplicate_dirs"
)

// RegisterTools registers all dupedir MCP tools with the server
func RegisterTools(s *server.MCPServer, deps *Dependencies) {
	h := NewHandlerSet(deps)

	s.AddTool(mcp.NewTool(ToolFindDuplicateDirs,
		mcp.WithDescription("Find pairs of directories that contain files with the same names, ranked by how likely they are duplicates"),
		mcp.WithArray("paths",
			mcp.WithStringItems(),
			mcp.Description("Directories to scan")),
		mcp.WithArray("list_files",
			mcp.WithStringItems(),
			mcp.Description("Stored path listings (one path per line) to load instead of or in addition to scanning")),
		mcp.WithArray("include_patterns",
			mcp.WithStringItems(),
			mcp.Description("Glob patterns a file must match to be indexed")),
		mcp.WithArray("exclude_patterns",
			mcp.WithStringItems(),
			mcp.Description("Glob patterns of files and directories to skip")),
		mcp.WithBoolean("aggregate_hierarchy",
			mcp.Description("Count files of whole subtrees instead of direct children only (default: false)")),
		mcp.WithNumber("min_shared_files",
			mcp.Description("Minimum number of shared file names for a pair to be reported (default: 3)")),
		mcp.WithNumber("max_candidate_dirs",
			mcp.Description("File names owned by more directories than this are ignored (default: 50)")),
		mcp.WithNumber("top",
			mcp.Description("Report at most this many pairs, 0 = all (default: 0)")),
		mcp.WithString("sort_by",
			mcp.Enum("score", "shared", "path"),
			mcp.Description("Ordering of the reported pairs (default: score)")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary returns statistics and records, full returns the whole response (default: summary)")),
	), h.HandleFindDuplicateDirs)
}
