package main

import (
	"fmt"

	"github.com/ludo-technologies/dupedir/app"
	"github.com/ludo-technologies/dupedir/domain"
	"github.com/ludo-technologies/dupedir/service"
	"github.com/spf13/cobra"
)

// ListCommand represents the list command
type ListCommand struct {
	dirs            []string
	outputPath      string
	includePatterns []string
	excludePatterns []string
}

// NewListCommand creates a new list command
func NewListCommand() *ListCommand {
	return &ListCommand{outputPath: domain.DefaultListingFile}
}

// CreateCobraCommand creates the cobra command for storing a files listing
func (l *ListCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [directories...]",
		Short: "Scan directories and store the files listing",
		Long: `Scan directories and store the absolute path of every file, one per
line, sorted. The listing can later be analyzed with 'dupedir find --load'
without scanning the disk again.

Symbolic links are not followed and unreadable directories are skipped.

Examples:
  dupedir list /data /backup -o data-files.txt
  dupedir list --dir ~/music --exclude '*.m3u'`,
		RunE: l.runList,
	}

	cmd.Flags().StringArrayVarP(&l.dirs, "dir", "d", nil, "Directory to scan (repeatable)")
	cmd.Flags().StringVarP(&l.outputPath, "output", "o", domain.DefaultListingFile, "Files listing to write")
	cmd.Flags().StringSliceVar(&l.includePatterns, service.FlagInclude, nil, "Only list files matching these patterns")
	cmd.Flags().StringSliceVar(&l.excludePatterns, service.FlagExclude, nil, "Skip files and directories matching these patterns")

	return cmd
}

func (l *ListCommand) runList(cmd *cobra.Command, args []string) error {
	logger := service.NewLogger(cmd.ErrOrStderr(), isVerbose(cmd))
	useCase := app.NewListUseCase(service.NewPathWalker(logger), service.NewPathListStore(logger))

	resp, err := useCase.Execute(cmd.Context(), domain.ListRequest{
		Roots:           append(append([]string{}, args...), l.dirs...),
		IncludePatterns: l.includePatterns,
		ExcludePatterns: l.excludePatterns,
		OutputPath:      l.outputPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored %s paths in %s (%s files scanned)\n",
		service.FormatCount(resp.Stored), resp.OutputPath, service.FormatCount(resp.Scanned))
	return nil
}

// NewListCmd creates and returns the list cobra command
func NewListCmd() *cobra.Command {
	return NewListCommand().CreateCobraCommand()
}
