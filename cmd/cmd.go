// Package cmd wires the sionna-utils command line interface.
package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/containerd/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mlouielu/sionna-utils/envconfig"
	"github.com/mlouielu/sionna-utils/version"
)

// appendEnvDocs extends a command's usage text with the environment
// variables it honors.
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command with all subcommands.
func NewCLI() *cobra.Command {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	slog.SetLogLoggerLevel(envconfig.LogLevel())
	cobra.EnableCommandSorting = false

	if runtime.GOOS == "windows" && term.IsTerminal(int(os.Stdout.Fd())) {
		console.ConsoleFromFile(os.Stdin) //nolint:errcheck
	}

	rootCmd := &cobra.Command{
		Use:           "sionna-utils",
		Short:         "Post-processing utilities for ray-tracing solver outputs",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Println(version.Version)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	statsCmd := newStatsCmd()
	convertCmd := newConvertCmd()
	exportCmd := newExportCmd()
	serveCmd := newServeCmd()

	envVars := envconfig.AsMap()
	appendEnvDocs(serveCmd, []envconfig.EnvVar{envVars["SIONNA_HOST"], envVars["SIONNA_ORIGINS"], envVars["SIONNA_DEBUG"], envVars["SIONNA_THUMB_MAX"]})
	appendEnvDocs(exportCmd, []envconfig.EnvVar{envVars["SIONNA_SCENES"]})

	rootCmd.AddCommand(
		statsCmd,
		convertCmd,
		exportCmd,
		serveCmd,
	)

	return rootCmd
}
