package cmd

import (
	"fmt"
	"io"
	"math"
	goruntime "runtime"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/autobrr/regexmatcher/pkg/runtime"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints the regexmatcher build, the Go toolchain and platform, and the default match timeout of the regex backend.`,

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout(), time.Now())
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(w io.Writer, now time.Time) {
	fmt.Fprintf(w, "regexmatcher %s (%s)\n", runtime.Version, runtime.GitCommit)
	fmt.Fprintf(w, "built:    %s\n", buildTime(runtime.Timestamp, now))
	fmt.Fprintf(w, "go:       %s %s/%s\n", goruntime.Version(), goruntime.GOOS, goruntime.GOARCH)

	timeout := "none"
	if regexp2.DefaultMatchTimeout < time.Duration(math.MaxInt64) {
		timeout = regexp2.DefaultMatchTimeout.String()
	}
	fmt.Fprintf(w, "timeout:  %s (regexp2 default)\n", timeout)
}

// buildTime renders a unix seconds timestamp as a date and its age relative to now.
func buildTime(ts string, now time.Time) string {
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ts
	}

	built := time.Unix(secs, 0).UTC()
	return fmt.Sprintf("%s (%s)", built.Format(time.RFC3339), humanize.RelTime(built, now, "ago", "from now"))
}
