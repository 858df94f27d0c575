package config

import (
	"os"
	"path/filepath"

	"github.com/hkuds/sandgate/internal/security"
)

// Config describes a sandbox configuration to be checked and, optionally,
// launched. It is the on-disk counterpart of sandbox.SandboxConfig.
type Config struct {
	// Image is the container image.
	Image string `json:"image"`

	// Binds are bind mount specifications of the form source:target[:mode].
	Binds []string `json:"binds"`

	// Network is the container network mode.
	Network string `json:"network"`

	// SeccompProfile is the seccomp profile reference, empty for the
	// runtime default.
	SeccompProfile string `json:"seccompProfile"`

	// ApparmorProfile is the AppArmor profile reference, empty for the
	// runtime default.
	ApparmorProfile string `json:"apparmorProfile"`

	// Env holds environment variables for the container.
	Env map[string]string `json:"env"`
}

// DefaultConfig returns the configuration used when no file exists: an
// isolated Alpine sandbox with no mounts.
func DefaultConfig() *Config {
	return &Config{
		Image:   "alpine:latest",
		Network: "none",
	}
}

// SecurityConfig maps the file contents onto the gate's input.
func (c *Config) SecurityConfig() security.Config {
	return security.Config{
		Binds:           c.Binds,
		Network:         c.Network,
		SeccompProfile:  c.SeccompProfile,
		ApparmorProfile: c.ApparmorProfile,
	}
}

// expandPath expands ~ to the user's home directory and resolves the path.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if len(path) == 1 {
			return home
		}
		return filepath.Join(home, path[1:])
	}

	return path
}
