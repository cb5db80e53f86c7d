// Package version holds build metadata injected with -ldflags "-X".
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Template returns the cobra version template for the named binary.
func Template(name string) string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)\n", name, Version, Commit, BuildDate)
}
