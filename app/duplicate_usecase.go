package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/dupedir/domain"
	svc "github.com/ludo-technologies/dupedir/service"
)

// DuplicateUseCase orchestrates the duplicate directory workflow:
// configuration, path collection, detection and report output.
type DuplicateUseCase struct {
	service      domain.DuplicateService
	walker       domain.PathWalker
	store        domain.PathListStore
	formatter    domain.DuplicateOutputFormatter
	configLoader domain.DuplicateConfigurationLoader
	output       domain.ReportWriter
}

// NewDuplicateUseCase creates a new duplicate use case
func NewDuplicateUseCase(
	service domain.DuplicateService,
	walker domain.PathWalker,
	store domain.PathListStore,
	formatter domain.DuplicateOutputFormatter,
	configLoader domain.DuplicateConfigurationLoader,
) *DuplicateUseCase {
	return &DuplicateUseCase{
		service:      service,
		walker:       walker,
		store:        store,
		formatter:    formatter,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// Execute finds duplicate directories and writes the report
func (uc *DuplicateUseCase) Execute(ctx context.Context, req domain.DuplicateRequest) error {
	response, finalReq, err := uc.run(ctx, req)
	if err != nil {
		return err
	}

	// Delegate output handling to ReportWriter
	var out io.Writer
	if finalReq.OutputPath == "" {
		out = finalReq.OutputWriter
	}
	if err := uc.output.Write(out, finalReq.OutputPath, finalReq.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// FindAndReturn finds duplicate directories and returns the response without formatting
func (uc *DuplicateUseCase) FindAndReturn(ctx context.Context, req domain.DuplicateRequest) (*domain.DuplicateResponse, error) {
	if req.OutputWriter == nil && req.OutputPath == "" {
		req.OutputWriter = io.Discard
	}
	response, _, err := uc.run(ctx, req)
	return response, err
}

func (uc *DuplicateUseCase) run(ctx context.Context, req domain.DuplicateRequest) (*domain.DuplicateResponse, domain.DuplicateRequest, error) {
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, req, err
	}

	if err := uc.validateRequest(finalReq); err != nil {
		return nil, finalReq, err
	}

	paths, err := CollectPaths(ctx, uc.walker, uc.store,
		finalReq.Roots, finalReq.ListFiles, finalReq.IncludePatterns, finalReq.ExcludePatterns)
	if err != nil {
		return nil, finalReq, err
	}

	response, err := uc.service.FindDuplicates(ctx, &finalReq, paths)
	if err != nil {
		return nil, finalReq, err
	}
	return response, finalReq, nil
}

// validateRequest validates the merged request
func (uc *DuplicateUseCase) validateRequest(req domain.DuplicateRequest) error {
	validators := []func(domain.DuplicateRequest) error{
		func(r domain.DuplicateRequest) error { return r.Validate() },
		func(r domain.DuplicateRequest) error { return svc.ValidatePatterns(r.IncludePatterns, r.ExcludePatterns) },
	}

	for _, validator := range validators {
		if err := validator(req); err != nil {
			return err
		}
	}
	return nil
}

// loadAndMergeConfig loads configuration and merges the request over it.
// An explicit ConfigPath must load; otherwise .dupedir.toml is discovered
// from the first input.
func (uc *DuplicateUseCase) loadAndMergeConfig(req domain.DuplicateRequest) (domain.DuplicateRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.DuplicateRequest
	var err error

	if req.ConfigPath != "" {
		configReq, err = uc.configLoader.LoadConfig(req.ConfigPath)
	} else {
		configReq, err = uc.configLoader.LoadDefaultConfig(discoveryTarget(req))
	}
	if err != nil {
		return req, err
	}

	if configReq != nil {
		return *uc.configLoader.MergeConfig(configReq, &req), nil
	}
	return req, nil
}

func discoveryTarget(req domain.DuplicateRequest) string {
	switch {
	case len(req.Roots) > 0:
		return req.Roots[0]
	case len(req.ListFiles) > 0:
		return req.ListFiles[0]
	default:
		return ""
	}
}

// DuplicateUseCaseBuilder provides a builder pattern for creating DuplicateUseCase
type DuplicateUseCaseBuilder struct {
	service      domain.DuplicateService
	walker       domain.PathWalker
	store        domain.PathListStore
	formatter    domain.DuplicateOutputFormatter
	configLoader domain.DuplicateConfigurationLoader
	output       domain.ReportWriter
}

// NewDuplicateUseCaseBuilder creates a new builder
func NewDuplicateUseCaseBuilder() *DuplicateUseCaseBuilder {
	return &DuplicateUseCaseBuilder{}
}

// WithService sets the duplicate service
func (b *DuplicateUseCaseBuilder) WithService(service domain.DuplicateService) *DuplicateUseCaseBuilder {
	b.service = service
	return b
}

// WithPathWalker sets the directory walker
func (b *DuplicateUseCaseBuilder) WithPathWalker(walker domain.PathWalker) *DuplicateUseCaseBuilder {
	b.walker = walker
	return b
}

// WithPathListStore sets the listing store
func (b *DuplicateUseCaseBuilder) WithPathListStore(store domain.PathListStore) *DuplicateUseCaseBuilder {
	b.store = store
	return b
}

// WithFormatter sets the output formatter
func (b *DuplicateUseCaseBuilder) WithFormatter(formatter domain.DuplicateOutputFormatter) *DuplicateUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *DuplicateUseCaseBuilder) WithConfigLoader(configLoader domain.DuplicateConfigurationLoader) *DuplicateUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer
func (b *DuplicateUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *DuplicateUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the DuplicateUseCase with the configured dependencies.
// The config loader is optional; without it configuration files are ignored.
func (b *DuplicateUseCaseBuilder) Build() (*DuplicateUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("duplicate service is required")
	}
	if b.walker == nil && b.store == nil {
		return nil, fmt.Errorf("path walker or path list store is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewDuplicateUseCase(b.service, b.walker, b.store, b.formatter, b.configLoader)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}
