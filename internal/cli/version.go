// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags "-X". Values left unset are filled from
// the module build info when the binary was built with go install.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// resolveBuildInfo fills the build metadata left unset by ldflags.
func resolveBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "unknown":
			Commit = s.Value
		case s.Key == "vcs.time" && BuildDate == "unknown":
			BuildDate = s.Value
		}
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit hash, build date, and Go version.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("odata2openapi %s\n", Version)
		for _, row := range [][2]string{
			{"Commit", Commit},
			{"Build Date", BuildDate},
			{"Go Version", runtime.Version()},
			{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
		} {
			cmd.Printf("  %-11s %s\n", row[0]+":", row[1])
		}
	},
}

// GetVersionInfo returns the one-line version printed by --version.
func GetVersionInfo() string {
	return fmt.Sprintf("odata2openapi %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
