package domain

// Duplicate detection defaults shared by the CLI, configuration and MCP layers.
const (
	// DefaultMinSharedFiles is the smallest number of shared file names a
	// reported pair must have. Pairs sharing one or two common names such as
	// README or index.html are mostly noise.
	DefaultMinSharedFiles = 3

	// DefaultMaxCandidateDirs bounds how many directories may hold a file name
	// before that name is ignored. Names present everywhere (.gitignore,
	// __init__.py) would otherwise produce a quadratic number of pairs.
	DefaultMaxCandidateDirs = 50

	// DefaultMaxResults of 0 reports every pair
	DefaultMaxResults = 0

	// MinMaxCandidateDirs is the smallest usable MaxCandidateDirs; a pair
	// needs at least two owners.
	MinMaxCandidateDirs = 2
)

// Default output settings
const (
	DefaultOutputFormat = OutputFormatText
	DefaultSortBy       = SortByScore

	// DefaultReportDirectory is relative to the working directory
	DefaultReportDirectory = ".dupedir/reports"

	// DefaultListingFile is the file the list command writes when no
	// output path is given
	DefaultListingFile = "dupedir-files.txt"
)
