package main

import (
	"runtime/debug"
	"strings"

	"github.com/speakeasy-api/jsxlint/cmd/jsxlint/commands/cmdutil"
	lintCmd "github.com/speakeasy-api/jsxlint/cmd/jsxlint/commands/lint"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo returns version information, prioritizing ldflags values over build info
func getVersionInfo() (string, string, string) {
	// If version/commit/date were set via ldflags (GoReleaser), use those
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit := commit
	vcsTime := date

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) >= 7 {
				vcsCommit = setting.Value[:7] // Short commit hash
			} else {
				vcsCommit = setting.Value
			}
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

var rootCmd = &cobra.Command{
	Use:   "jsxlint",
	Short: "Linter for Inferno JSX components",
	Long: `A linter for JavaScript and JSX sources written for Inferno and other
React-like libraries.

This CLI provides tools for:
- Linting files and directories with the built-in rules and custom JS/TS rules
- Automatically fixing findings that carry a fix
- Listing the available rules, their categories and rulesets
- Printing the ESTree syntax tree custom rules operate on

Run 'jsxlint lint --help' for configuration, caching and fixing details.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Get version information (prioritizes ldflags, falls back to build info)
	currentVersion, currentCommit, currentDate := getVersionInfo()

	rootCmd.Version = currentVersion

	// Set version template with build info
	var versionTemplate strings.Builder
	versionTemplate.WriteString(`{{printf "%s" .Version}}`)

	if currentCommit != "none" && currentCommit != "" {
		versionTemplate.WriteString("\nBuild: " + currentCommit)
	}

	if currentDate != "unknown" && currentDate != "" {
		versionTemplate.WriteString("\nBuilt: " + currentDate)
	}

	rootCmd.SetVersionTemplate(versionTemplate.String() + "\n")

	lintCmd.Apply(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cmdutil.Die(err)
	}
}
