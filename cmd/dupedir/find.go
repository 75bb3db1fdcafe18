package main

import (
	"fmt"
	"io"

	"github.com/ludo-technologies/dupedir/app"
	"github.com/ludo-technologies/dupedir/domain"
	"github.com/ludo-technologies/dupedir/internal/config"
	"github.com/ludo-technologies/dupedir/service"
	"github.com/spf13/cobra"
)

// FindCommand represents the find command
type FindCommand struct {
	dirs      []string
	listFiles []string

	includePatterns []string
	excludePatterns []string

	hierarchy        bool
	minSharedFiles   int
	maxCandidateDirs int
	top              int
	sortBy           string

	format     string
	json       bool
	csv        bool
	yaml       bool
	outputPath string
	configFile string
	noProgress bool
}

// NewFindCommand creates a new find command
func NewFindCommand() *FindCommand {
	return &FindCommand{
		minSharedFiles:   domain.DefaultMinSharedFiles,
		maxCandidateDirs: domain.DefaultMaxCandidateDirs,
		sortBy:           string(domain.DefaultSortBy),
	}
}

// CreateCobraCommand creates the cobra command for duplicate detection
func (f *FindCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [directories...]",
		Short: "Find directories sharing many file names",
		Long: `Find pairs of directories that hold files with the same names.

Files come from scanning directories (arguments or --dir) and from stored
listings written by 'dupedir list' (--load). Both can be combined.

Each reported pair is printed as

  {score} overlap% [shared / shared below] - [files / files below] dir1 - [files / files below] dir2

where overlap is the shared count divided by the smaller directory's file
count and score is log10(shared) + overlap.

Examples:
  # Scan two trees and print pairs sharing at least 3 file names
  dupedir find ~/photos /mnt/backup/photos

  # Analyze a stored listing, comparing whole subtrees
  dupedir find --load dupedir-files.txt --hierarchy

  # Report the 20 best pairs as JSON to stdout
  dupedir find --load files.txt --top 20 --json --output -`,
		RunE: f.runFind,
	}

	cmd.Flags().StringArrayVarP(&f.dirs, "dir", "d", nil, "Directory to scan (repeatable)")
	cmd.Flags().StringArrayVarP(&f.listFiles, "load", "l", nil, "Files listing to load (repeatable)")
	cmd.Flags().StringSliceVar(&f.includePatterns, service.FlagInclude, nil, "Only index files matching these patterns")
	cmd.Flags().StringSliceVar(&f.excludePatterns, service.FlagExclude, nil, "Skip files and directories matching these patterns")

	cmd.Flags().BoolVarP(&f.hierarchy, service.FlagHierarchy, "H", false, "Also compare parent directories by the files below them")
	cmd.Flags().IntVarP(&f.minSharedFiles, service.FlagMinShared, "m", domain.DefaultMinSharedFiles, "Minimum number of shared file names")
	cmd.Flags().IntVar(&f.maxCandidateDirs, service.FlagMaxDirs, domain.DefaultMaxCandidateDirs, "Ignore file names present in more directories than this")
	cmd.Flags().IntVarP(&f.top, service.FlagTop, "n", domain.DefaultMaxResults, "Report only the N best pairs (0 = all)")
	cmd.Flags().StringVar(&f.sortBy, service.FlagSort, string(domain.DefaultSortBy), "Sort order (score|shared|path)")

	cmd.Flags().StringVar(&f.format, service.FlagFormat, "", "Output format (text|json|yaml|csv)")
	cmd.Flags().BoolVar(&f.json, "json", false, "Generate JSON report")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "Generate CSV report")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "Generate YAML report")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Report file ('-' for stdout)")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "Disable the progress indicator")

	return cmd
}

func (f *FindCommand) runFind(cmd *cobra.Command, args []string) error {
	roots := append(append([]string{}, args...), f.dirs...)

	cfg, err := config.LoadConfigWithTarget(f.configFile, targetFrom(roots, f.listFiles))
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}

	request, err := f.createRequest(cmd, roots, cfg)
	if err != nil {
		return err
	}

	useCase, err := f.createUseCase(cmd)
	if err != nil {
		return fmt.Errorf("failed to create find use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), *request)
}

// createRequest builds the request from flags; the use case merges it
// over the configuration
func (f *FindCommand) createRequest(cmd *cobra.Command, roots []string, cfg *config.Config) (*domain.DuplicateRequest, error) {
	fallback := cfg.Output.Format
	if cmd.Flags().Changed(service.FlagFormat) {
		fallback = f.format
	}
	outputFormat, extension, err := service.NewOutputFormatResolver().Determine(f.json, f.csv, f.yaml, fallback)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid output format", err)
	}

	sortBy, err := domain.ParseSortCriteria(f.sortBy)
	if err != nil {
		return nil, err
	}

	var outputWriter io.Writer
	var outputPath string
	switch {
	case f.outputPath == "-":
		outputWriter = cmd.OutOrStdout()
	case f.outputPath != "":
		outputPath = f.outputPath
	case outputFormat == domain.OutputFormatText:
		outputWriter = cmd.OutOrStdout()
	default:
		outputPath, err = generateOutputFilePath(cfg.Output.Directory, extension)
		if err != nil {
			return nil, err
		}
	}

	return &domain.DuplicateRequest{
		Roots:              roots,
		ListFiles:          f.listFiles,
		IncludePatterns:    f.includePatterns,
		ExcludePatterns:    f.excludePatterns,
		AggregateHierarchy: f.hierarchy,
		MinSharedFiles:     f.minSharedFiles,
		MaxCandidateDirs:   f.maxCandidateDirs,
		MaxResults:         f.top,
		SortBy:             sortBy,
		OutputFormat:       outputFormat,
		OutputWriter:       outputWriter,
		OutputPath:         outputPath,
		ConfigPath:         f.configFile,
	}, nil
}

// createUseCase wires the find use case
func (f *FindCommand) createUseCase(cmd *cobra.Command) (*app.DuplicateUseCase, error) {
	logger := service.NewLogger(cmd.ErrOrStderr(), isVerbose(cmd))

	progress := service.NewNoopProgressManager()
	if !f.noProgress && service.IsInteractiveEnvironment() {
		progress = service.NewProgressManager("Indexing files")
	}

	return app.NewDuplicateUseCaseBuilder().
		WithService(service.NewDuplicateService(logger, progress)).
		WithPathWalker(service.NewPathWalker(logger)).
		WithPathListStore(service.NewPathListStore(logger)).
		WithFormatter(service.NewDuplicateFormatter()).
		WithConfigLoader(service.NewDuplicateConfigurationLoader(GetExplicitFlags(cmd))).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

// NewFindCmd creates and returns the find cobra command
func NewFindCmd() *cobra.Command {
	return NewFindCommand().CreateCobraCommand()
}
