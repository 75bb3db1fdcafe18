package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/ludo-technologies/dupedir/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// Tool arguments and the CLI flag each one stands for in configuration merging
var argumentFlags = map[string]string{
	"include_patterns":    service.FlagInclude,
	"exclude_patterns":    service.FlagExclude,
	"aggregate_hierarchy": service.FlagHierarchy,
	"min_shared_files":    service.FlagMinShared,
	"max_candidate_dirs":  service.FlagMaxDirs,
	"top":                 service.FlagTop,
	"sort_by":             service.FlagSort,
}

// HandleFindDuplicateDirs handles the find_duplicate_dirs tool
func (h *HandlerSet) HandleFindDuplicateDirs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	paths, err := stringSlice(args, "paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	listFiles, err := stringSlice(args, "list_files")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(paths) == 0 && len(listFiles) == 0 {
		return mcp.NewToolResultError("paths or list_files is required"), nil
	}
	for _, p := range append(append([]string{}, paths...), listFiles...) {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", p)), nil
		}
	}

	req, err := buildRequest(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	req.Roots = paths
	req.ListFiles = listFiles
	req.ConfigPath = h.deps.ConfigPath()

	explicit := make(map[string]bool)
	for arg, flag := range argumentFlags {
		if _, ok := args[arg]; ok {
			explicit[flag] = true
		}
	}

	uc, err := h.deps.BuildDuplicateUseCase(explicit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create duplicate finder: %v", err)), nil
	}

	result, err := uc.FindAndReturn(ctx, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplicate detection failed: %v", err)), nil
	}

	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = result
	default:
		records := make([]string, 0, len(result.Duplicates))
		for i := range result.Duplicates {
			records = append(records, service.FormatRecord(&result.Duplicates[i]))
		}
		responseData = map[string]interface{}{
			"aggregate_hierarchy": result.AggregateHierarchy,
			"min_shared_files":    result.MinSharedFiles,
			"statistics":          result.Statistics,
			"duplicates":          records,
		}
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// buildRequest converts the optional tool arguments into a request on top
// of the defaults.
func buildRequest(args map[string]interface{}) (*domain.DuplicateRequest, error) {
	req := domain.DefaultDuplicateRequest()

	var err error
	if req.IncludePatterns, err = stringSlice(args, "include_patterns"); err != nil {
		return nil, err
	}
	if req.ExcludePatterns, err = stringSlice(args, "exclude_patterns"); err != nil {
		return nil, err
	}

	if v, ok := args["aggregate_hierarchy"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("aggregate_hierarchy must be a boolean")
		}
		req.AggregateHierarchy = b
	}

	numbers := []struct {
		name   string
		target *int
	}{
		{"min_shared_files", &req.MinSharedFiles},
		{"max_candidate_dirs", &req.MaxCandidateDirs},
		{"top", &req.MaxResults},
	}
	for _, n := range numbers {
		v, ok := args[n.name]
		if !ok {
			continue
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%s must be a number", n.name)
		}
		*n.target = int(f)
	}

	if v, ok := args["sort_by"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("sort_by must be a string")
		}
		if req.SortBy, err = domain.ParseSortCriteria(s); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// stringSlice reads an optional array of strings
func stringSlice(args map[string]interface{}, name string) ([]string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", name)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be an array of strings", name)
		}
		out = append(out, s)
	}
	return out, nil
}
