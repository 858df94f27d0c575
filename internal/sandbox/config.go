// Package sandbox provides a gated container-based execution environment.
package sandbox

import (
	"fmt"
	"time"

	"github.com/hkuds/sandgate/internal/security"
)

// Default configuration values.
const (
	DefaultImage        = "alpine:latest"
	DefaultMemoryMB     = 128
	DefaultCPUPercent   = 0.5
	DefaultMaxProcesses = 50
	DefaultTimeout      = 30 * time.Second
	DefaultWorkDir      = "/workspace"
	DefaultNetwork      = "none"
)

// SandboxConfig holds configuration for the sandbox environment.
type SandboxConfig struct {
	// Image is the container image to use.
	// Default: alpine:latest
	Image string

	// MemoryMB is the memory limit in megabytes.
	// Default: 128
	MemoryMB int64

	// CPUPercent is the CPU limit as a fraction (0.0-1.0).
	// Default: 0.5 (50% of one CPU)
	CPUPercent float64

	// MaxProcesses is the maximum number of PIDs allowed in the container.
	// Default: 50
	MaxProcesses int64

	// Network is the container network mode.
	// Default: none (isolated)
	Network string

	// SeccompProfile is an optional seccomp profile reference passed to the
	// runtime. Empty means the runtime default.
	SeccompProfile string

	// ApparmorProfile is an optional AppArmor profile reference passed to
	// the runtime. Empty means the runtime default.
	ApparmorProfile string

	// WorkDir is the working directory inside the container.
	// Default: /workspace
	WorkDir string

	// Timeout is the maximum duration for command execution.
	// Default: 30s
	Timeout time.Duration

	// Mounts specifies host paths to bind into the container.
	Mounts []MountPath

	// Env holds environment variables for the container. Credential-bearing
	// keys are stripped before the container sees them.
	Env map[string]string
}

// MountPath defines a bind mount configuration.
type MountPath struct {
	// Source is the path on the host.
	Source string

	// Target is the path inside the container.
	Target string

	// ReadOnly makes the mount read-only if true.
	ReadOnly bool
}

// Bind renders the mount as a source:target[:mode] bind specification.
func (m MountPath) Bind() string {
	if m.ReadOnly {
		return fmt.Sprintf("%s:%s:ro", m.Source, m.Target)
	}
	return fmt.Sprintf("%s:%s", m.Source, m.Target)
}

// DefaultConfig returns a SandboxConfig with sensible defaults.
func DefaultConfig() SandboxConfig {
	return SandboxConfig{
		Image:        DefaultImage,
		MemoryMB:     DefaultMemoryMB,
		CPUPercent:   DefaultCPUPercent,
		MaxProcesses: DefaultMaxProcesses,
		Network:      DefaultNetwork,
		WorkDir:      DefaultWorkDir,
		Timeout:      DefaultTimeout,
	}
}

// WithImage returns a copy of the config with the specified image.
func (c SandboxConfig) WithImage(image string) SandboxConfig {
	c.Image = image
	return c
}

// WithMemoryMB returns a copy of the config with the specified memory limit.
func (c SandboxConfig) WithMemoryMB(mb int64) SandboxConfig {
	c.MemoryMB = mb
	return c
}

// WithCPUPercent returns a copy of the config with the specified CPU limit.
func (c SandboxConfig) WithCPUPercent(pct float64) SandboxConfig {
	c.CPUPercent = pct
	return c
}

// WithMaxProcesses returns a copy of the config with the specified PID limit.
func (c SandboxConfig) WithMaxProcesses(max int64) SandboxConfig {
	c.MaxProcesses = max
	return c
}

// WithNetwork returns a copy of the config with the specified network mode.
func (c SandboxConfig) WithNetwork(mode string) SandboxConfig {
	c.Network = mode
	return c
}

// WithSeccompProfile returns a copy of the config with the specified seccomp profile.
func (c SandboxConfig) WithSeccompProfile(profile string) SandboxConfig {
	c.SeccompProfile = profile
	return c
}

// WithApparmorProfile returns a copy of the config with the specified AppArmor profile.
func (c SandboxConfig) WithApparmorProfile(profile string) SandboxConfig {
	c.ApparmorProfile = profile
	return c
}

// WithWorkDir returns a copy of the config with the specified working directory.
func (c SandboxConfig) WithWorkDir(dir string) SandboxConfig {
	c.WorkDir = dir
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c SandboxConfig) WithTimeout(timeout time.Duration) SandboxConfig {
	c.Timeout = timeout
	return c
}

// WithEnv returns a copy of the config with the specified environment.
func (c SandboxConfig) WithEnv(env map[string]string) SandboxConfig {
	c.Env = env
	return c
}

// AddMount returns a copy of the config with an additional bind mount.
func (c SandboxConfig) AddMount(source, target string, readOnly bool) SandboxConfig {
	c.Mounts = append(c.Mounts, MountPath{
		Source:   source,
		Target:   target,
		ReadOnly: readOnly,
	})
	return c
}

// ApplyDefaults fills zero-valued fields with defaults.
func (c *SandboxConfig) ApplyDefaults() {
	if c.Image == "" {
		c.Image = DefaultImage
	}
	if c.MemoryMB <= 0 {
		c.MemoryMB = DefaultMemoryMB
	}
	if c.CPUPercent <= 0 || c.CPUPercent > 1.0 {
		c.CPUPercent = DefaultCPUPercent
	}
	if c.MaxProcesses <= 0 {
		c.MaxProcesses = DefaultMaxProcesses
	}
	if c.Network == "" {
		c.Network = DefaultNetwork
	}
	if c.WorkDir == "" {
		c.WorkDir = DefaultWorkDir
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// SecurityConfig maps the sandbox configuration onto the slice the security
// gate validates.
func (c SandboxConfig) SecurityConfig() security.Config {
	binds := make([]string, 0, len(c.Mounts))
	for _, m := range c.Mounts {
		binds = append(binds, m.Bind())
	}
	return security.Config{
		Binds:           binds,
		Network:         c.Network,
		SeccompProfile:  c.SeccompProfile,
		ApparmorProfile: c.ApparmorProfile,
	}
}
