package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ludo-technologies/dupedir/internal/version"
	"github.com/ludo-technologies/dupedir/service"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the dupedir command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dupedir",
		Short: "Find directories that hold the same files",
		Long: `dupedir finds likely duplicate directories in large file trees.

Directories are compared by the names of the files they contain: two
directories sharing many file names, relative to their size, are reported
as a pair. With --hierarchy, parent directories are also compared by the
files shared anywhere below them.

File contents are never read, so a full scan can be stored once with
'dupedir list' and analyzed many times with 'dupedir find --load'.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewFindCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		printError(os.Stderr, err, verbose)
		os.Exit(1)
	}
}

// printError prints a categorized error with recovery suggestions
func printError(w io.Writer, err error, verbose bool) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %s\n", categorized.Message)
	if categorized.Message != err.Error() {
		fmt.Fprintf(w, "  %v\n", err)
	}
	if !verbose {
		return
	}
	fmt.Fprintln(w, "\nSuggestions:")
	for _, suggestion := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  - %s\n", suggestion)
	}
}

// isVerbose reads the global --verbose flag from any subcommand
func isVerbose(cmd *cobra.Command) bool {
	if f := cmd.Flag("verbose"); f != nil {
		return f.Value.String() == "true"
	}
	return false
}
