package config

import "fmt"

// The following vars are injected at build time via -ldflags.
var (
	// ModuleName is the name of the module.
	ModuleName = "wallet-core"
	// Commit is the git commit hash the binary was built from.
	Commit = "local"
	// BuildDate is the RFC3339 timestamp of the build.
	BuildDate = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns "<ModuleName> @ <Commit> (<BuildDate>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
