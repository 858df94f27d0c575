package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hkuds/sandgate/internal/config"
	"github.com/hkuds/sandgate/internal/security"
	"github.com/hkuds/sandgate/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a sandbox configuration against the security gate",
	Long: `Validate a sandbox configuration (from a spec file, flags, or both) against
the blocked host path denylist and the network/seccomp/AppArmor checks.
Exits non-zero when any check fails.`,
	RunE: runCheck,
}

var (
	checkConfigPath string
	checkBinds      []string
	checkNetwork    string
	checkSeccomp    string
	checkApparmor   string
	checkNoResolve  bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "", "sandbox spec file (default ~/.sandgate/sandbox.json)")
	checkCmd.Flags().StringSliceVar(&checkBinds, "bind", nil, "bind mount to check (source:target[:mode]); overrides the spec file")
	checkCmd.Flags().StringVar(&checkNetwork, "network", "", "network mode to check; overrides the spec file")
	checkCmd.Flags().StringVar(&checkSeccomp, "seccomp", "", "seccomp profile to check; overrides the spec file")
	checkCmd.Flags().StringVar(&checkApparmor, "apparmor", "", "AppArmor profile to check; overrides the spec file")
	checkCmd.Flags().BoolVar(&checkNoResolve, "no-resolve", false, "skip symlink resolution; lexical checks only, no filesystem access")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(checkConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sec := fileCfg.SecurityConfig()
	if len(checkBinds) > 0 {
		sec.Binds = checkBinds
	}
	if cmd.Flags().Changed("network") {
		sec.Network = checkNetwork
	}
	if cmd.Flags().Changed("seccomp") {
		sec.SeccompProfile = checkSeccomp
	}
	if cmd.Flags().Changed("apparmor") {
		sec.ApparmorProfile = checkApparmor
	}

	verr := validate(sec)
	fmt.Println(tui.RenderVerdict("sandbox configuration", verr))
	if verr != nil {
		return ErrBlocked
	}
	return nil
}

// validate runs the gate, optionally restricted to the I/O-free lexical pass
// for dry-run audits.
func validate(sec security.Config) error {
	if !checkNoResolve {
		return security.ValidateConfig(sec)
	}

	for _, bind := range sec.Binds {
		if strings.TrimSpace(bind) == "" {
			continue
		}
		if v := security.MatchBindSource(bind); v != nil {
			return v
		}
	}
	if err := security.ValidateNetworkMode(sec.Network); err != nil {
		return err
	}
	if err := security.ValidateSeccompProfile(sec.SeccompProfile); err != nil {
		return err
	}
	return security.ValidateApparmorProfile(sec.ApparmorProfile)
}
