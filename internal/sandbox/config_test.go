package sandbox

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", cfg.Image, DefaultImage)
	}
	if cfg.MemoryMB != DefaultMemoryMB {
		t.Errorf("MemoryMB = %d, want %d", cfg.MemoryMB, DefaultMemoryMB)
	}
	if cfg.CPUPercent != DefaultCPUPercent {
		t.Errorf("CPUPercent = %f, want %f", cfg.CPUPercent, DefaultCPUPercent)
	}
	if cfg.MaxProcesses != DefaultMaxProcesses {
		t.Errorf("MaxProcesses = %d, want %d", cfg.MaxProcesses, DefaultMaxProcesses)
	}
	if cfg.Network != DefaultNetwork {
		t.Errorf("Network = %q, want %q", cfg.Network, DefaultNetwork)
	}
	if cfg.SeccompProfile != "" {
		t.Error("SeccompProfile should be empty by default")
	}
	if cfg.ApparmorProfile != "" {
		t.Error("ApparmorProfile should be empty by default")
	}
	if cfg.WorkDir != DefaultWorkDir {
		t.Errorf("WorkDir = %q, want %q", cfg.WorkDir, DefaultWorkDir)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Mounts != nil {
		t.Error("Mounts should be nil by default")
	}
}

func TestConfigWithMethods(t *testing.T) {
	cfg := DefaultConfig().
		WithImage("python:3.11-alpine").
		WithMemoryMB(256).
		WithCPUPercent(0.75).
		WithMaxProcesses(100).
		WithNetwork("bridge").
		WithSeccompProfile("default.json").
		WithApparmorProfile("docker-default").
		WithWorkDir("/app").
		WithTimeout(60 * time.Second).
		AddMount("/home/user/project", "/app/project", true)

	if cfg.Image != "python:3.11-alpine" {
		t.Errorf("Image = %q, want %q", cfg.Image, "python:3.11-alpine")
	}
	if cfg.MemoryMB != 256 {
		t.Errorf("MemoryMB = %d, want %d", cfg.MemoryMB, 256)
	}
	if cfg.CPUPercent != 0.75 {
		t.Errorf("CPUPercent = %f, want %f", cfg.CPUPercent, 0.75)
	}
	if cfg.MaxProcesses != 100 {
		t.Errorf("MaxProcesses = %d, want %d", cfg.MaxProcesses, 100)
	}
	if cfg.Network != "bridge" {
		t.Errorf("Network = %q, want %q", cfg.Network, "bridge")
	}
	if cfg.SeccompProfile != "default.json" {
		t.Errorf("SeccompProfile = %q, want %q", cfg.SeccompProfile, "default.json")
	}
	if cfg.ApparmorProfile != "docker-default" {
		t.Errorf("ApparmorProfile = %q, want %q", cfg.ApparmorProfile, "docker-default")
	}
	if cfg.WorkDir != "/app" {
		t.Errorf("WorkDir = %q, want %q", cfg.WorkDir, "/app")
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, 60*time.Second)
	}
	if len(cfg.Mounts) != 1 || cfg.Mounts[0].Source != "/home/user/project" {
		t.Errorf("Mounts = %v, want one project mount", cfg.Mounts)
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg SandboxConfig
	cfg.ApplyDefaults()

	if cfg.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", cfg.Image, DefaultImage)
	}
	if cfg.Network != DefaultNetwork {
		t.Errorf("Network = %q, want %q", cfg.Network, DefaultNetwork)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}

	// Explicit values survive.
	cfg = SandboxConfig{Network: "bridge", CPUPercent: 2.0}
	cfg.ApplyDefaults()
	if cfg.Network != "bridge" {
		t.Errorf("Network = %q, want %q", cfg.Network, "bridge")
	}
	if cfg.CPUPercent != DefaultCPUPercent {
		t.Errorf("out-of-range CPUPercent = %f, want default %f", cfg.CPUPercent, DefaultCPUPercent)
	}
}

func TestMountPathBind(t *testing.T) {
	rw := MountPath{Source: "/src", Target: "/dst"}
	if got := rw.Bind(); got != "/src:/dst" {
		t.Errorf("Bind() = %q, want %q", got, "/src:/dst")
	}
	ro := MountPath{Source: "/src", Target: "/dst", ReadOnly: true}
	if got := ro.Bind(); got != "/src:/dst:ro" {
		t.Errorf("Bind() = %q, want %q", got, "/src:/dst:ro")
	}
}

func TestSecurityConfigMapping(t *testing.T) {
	cfg := DefaultConfig().
		WithNetwork("none").
		WithSeccompProfile("default.json").
		WithApparmorProfile("docker-default").
		AddMount("/home/user/src", "/src", false).
		AddMount("/home/user/data", "/data", true)

	sec := cfg.SecurityConfig()

	if len(sec.Binds) != 2 {
		t.Fatalf("len(Binds) = %d, want 2", len(sec.Binds))
	}
	if sec.Binds[0] != "/home/user/src:/src" {
		t.Errorf("Binds[0] = %q", sec.Binds[0])
	}
	if sec.Binds[1] != "/home/user/data:/data:ro" {
		t.Errorf("Binds[1] = %q", sec.Binds[1])
	}
	if sec.Network != "none" {
		t.Errorf("Network = %q", sec.Network)
	}
	if sec.SeccompProfile != "default.json" {
		t.Errorf("SeccompProfile = %q", sec.SeccompProfile)
	}
	if sec.ApparmorProfile != "docker-default" {
		t.Errorf("ApparmorProfile = %q", sec.ApparmorProfile)
	}
}
