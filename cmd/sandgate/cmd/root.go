package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrBlocked signals that a configuration failed the security gate. The
// verdict has already been rendered; callers only need the exit code.
var ErrBlocked = errors.New("configuration blocked by security gate")

var rootCmd = &cobra.Command{
	Use:   "sandgate",
	Short: "sandgate - pre-flight security gate for container sandboxes",
	Long: `sandgate checks container sandbox configurations (bind mounts, network mode,
seccomp and AppArmor profile selection) against a denylist of dangerous host
exposures, and refuses to let a configuration proceed to container creation
when a check fails.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)
}
