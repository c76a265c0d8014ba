package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/spf13/cobra"

	"github.com/fanzhongxing/jcc-web/apiclient"
)

var (
	appVersion = "dev"
	appBuilt   = "unknown"
)

// SetVersion records the build information injected at link time
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuilt = buildTime
}

// parsedVersion returns the semantic version, or false for dev builds
func parsedVersion() (semver.Version, bool) {
	v, err := semver.ParseTolerant(appVersion)
	if err != nil {
		return semver.Version{}, false
	}
	return v, true
}

func userAgent() string {
	if v, ok := parsedVersion(); ok {
		return fmt.Sprintf("%s/%s", apiclient.DefaultAgent, v.String())
	}
	return apiclient.DefaultAgent + "/dev"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or client needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		v, ok := parsedVersion()
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "jcc %s (built %s)\n", appVersion, appBuilt)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "jcc %s (built %s)\n", v.String(), appBuilt)
		if len(v.Pre) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "pre-release build")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
