package mcp

import (
	"log/slog"

	"github.com/ludo-technologies/dupedir/app"
	"github.com/ludo-technologies/dupedir/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	logger     *slog.Logger
	configPath string
}

// NewDependencies constructs the dependency set. A nil logger discards.
func NewDependencies(logger *slog.Logger, configPath string) *Dependencies {
	if logger == nil {
		logger = service.NewDiscardLogger()
	}
	return &Dependencies{
		logger:     logger,
		configPath: configPath,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Logger returns the logger shared by the built use cases.
func (d *Dependencies) Logger() *slog.Logger {
	return d.logger
}

// BuildDuplicateUseCase assembles a fresh DuplicateUseCase. explicit holds
// the flag names whose tool arguments were supplied by the client, so
// that only those override configured values.
func (d *Dependencies) BuildDuplicateUseCase(explicit map[string]bool) (*app.DuplicateUseCase, error) {
	return app.NewDuplicateUseCaseBuilder().
		WithService(service.NewDuplicateService(d.logger, nil)).
		WithPathWalker(service.NewPathWalker(d.logger)).
		WithPathListStore(service.NewPathListStore(d.logger)).
		WithFormatter(service.NewDuplicateFormatter()).
		WithConfigLoader(service.NewDuplicateConfigurationLoader(explicit)).
		Build()
}
