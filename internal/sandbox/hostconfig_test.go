package sandbox

import (
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"

	"github.com/hkuds/sandgate/internal/security"
)

func TestSecurityConfigFromHost(t *testing.T) {
	hc := &container.HostConfig{
		Binds:       []string{"/home/user/src:/src:rw"},
		NetworkMode: "bridge",
		SecurityOpt: []string{
			"no-new-privileges:true",
			"seccomp=/etc/docker/seccomp.json",
			"apparmor:my-profile",
		},
		Mounts: []mount.Mount{
			{Type: mount.TypeBind, Source: "/home/user/data", Target: "/data", ReadOnly: true},
			{Type: mount.TypeTmpfs, Target: "/tmp"},
		},
	}

	cfg := SecurityConfigFromHost(hc)

	if len(cfg.Binds) != 2 {
		t.Fatalf("len(Binds) = %d, want 2", len(cfg.Binds))
	}
	if cfg.Binds[0] != "/home/user/src:/src:rw" {
		t.Errorf("Binds[0] = %q", cfg.Binds[0])
	}
	if cfg.Binds[1] != "/home/user/data:/data:ro" {
		t.Errorf("Binds[1] = %q", cfg.Binds[1])
	}
	if cfg.Network != "bridge" {
		t.Errorf("Network = %q, want %q", cfg.Network, "bridge")
	}
	if cfg.SeccompProfile != "/etc/docker/seccomp.json" {
		t.Errorf("SeccompProfile = %q", cfg.SeccompProfile)
	}
	if cfg.ApparmorProfile != "my-profile" {
		t.Errorf("ApparmorProfile = %q", cfg.ApparmorProfile)
	}
}

func TestSecurityConfigFromHostNil(t *testing.T) {
	cfg := SecurityConfigFromHost(nil)
	if len(cfg.Binds) != 0 || cfg.Network != "" {
		t.Errorf("SecurityConfigFromHost(nil) = %+v, want zero value", cfg)
	}
}

func TestSecurityConfigFromHostFeedsGate(t *testing.T) {
	hc := &container.HostConfig{
		Binds:       []string{"/var/run/docker.sock:/var/run/docker.sock"},
		NetworkMode: "none",
	}

	if err := security.ValidateConfig(SecurityConfigFromHost(hc)); err == nil {
		t.Error("docker socket HostConfig passed the gate")
	}
}
