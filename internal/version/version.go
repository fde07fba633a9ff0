package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the salc CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var componentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored раскрашивает major/minor/patch; суффикс после '-' остаётся как есть.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	for i := range parts {
		if i < len(componentColors) {
			parts[i] = componentColors[i].Sprint(parts[i])
		}
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Fingerprint identifies the compiler build; cached outputs of other builds are ignored.
func Fingerprint() string {
	fp := "salc " + strings.TrimSpace(Version)
	if commit := strings.TrimSpace(GitCommit); commit != "" {
		fp += "+" + commit
	}
	return fp
}
