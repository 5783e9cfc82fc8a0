package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata of the ssc CLI, overridable via -ldflags "-X ssc/internal/version.Version=...".
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted. When
// enabled is false the plain string is returned.
func Colored(enabled bool) string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	if !enabled {
		return v
	}
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	for _, c := range []*color.Color{majorColor, minorColor, patchColor} {
		c.EnableColor()
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}
