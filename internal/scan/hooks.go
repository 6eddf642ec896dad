package scan

import (
	"go.uber.org/zap"

	"github.com/temirov/apimap/internal/config"
)

// Hooks adapts the runner to a host build pipeline's lifecycle. The host delivers
// its resolved alias table once, then triggers a full pass at the start and again at
// the end of its build; both triggers overwrite the artifact and are idempotent
// given an unchanged source tree.
type Hooks struct {
	settings config.Settings
	logger   *zap.Logger
}

// NewHooks constructs lifecycle hooks around the resolved settings.
func NewHooks(settings config.Settings, logger *zap.Logger) *Hooks {
	return &Hooks{settings: settings, logger: logger}
}

// ConfigResolved merges the alias table the host build discovered into the scan
// configuration. Host entries win over file-configured entries.
func (hooks *Hooks) ConfigResolved(aliasTable map[string]string) {
	hooks.settings.MergeAliasTable(aliasTable)
}

// BuildStart runs a full pass and writes the artifact.
func (hooks *Hooks) BuildStart() error {
	_, runError := NewRunner(hooks.settings, hooks.logger).RunAndWrite()
	return runError
}

// BuildEnd runs a full pass again, overwriting the artifact produced at build start.
func (hooks *Hooks) BuildEnd() error {
	_, runError := NewRunner(hooks.settings, hooks.logger).RunAndWrite()
	return runError
}
