package sandbox

import (
	"strings"
	"testing"
)

func TestNewRejectsBlockedConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         SandboxConfig
		wantContain string
	}{
		{
			name:        "docker socket mount",
			cfg:         DefaultConfig().AddMount("/var/run/docker.sock", "/var/run/docker.sock", false),
			wantContain: "targets blocked path",
		},
		{
			name:        "ancestor mount",
			cfg:         DefaultConfig().AddMount("/var", "/var", true),
			wantContain: "covers blocked path",
		},
		{
			name:        "host network",
			cfg:         DefaultConfig().WithNetwork("host"),
			wantContain: `network mode "host" is blocked`,
		},
		{
			name:        "unconfined seccomp",
			cfg:         DefaultConfig().WithSeccompProfile("unconfined"),
			wantContain: "seccomp profile",
		},
		{
			name:        "unconfined apparmor",
			cfg:         DefaultConfig().WithApparmorProfile("unconfined"),
			wantContain: "apparmor profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb, err := New(tt.cfg)
			if err == nil {
				_ = sb.Close()
				t.Fatal("New() accepted a blocked configuration")
			}
			if !strings.Contains(err.Error(), tt.wantContain) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantContain)
			}
		})
	}
}

func TestNewAcceptsSafeConfig(t *testing.T) {
	cfg := DefaultConfig().AddMount("/home/user/project", "/workspace/project", true)

	sb, err := New(cfg)
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}
	defer sb.Close()

	if sb.IsRunning() {
		t.Error("sandbox should not be running before Start")
	}
	if sb.ContainerID() != "" {
		t.Error("ContainerID should be empty before Start")
	}
}

func TestNewWithClientNil(t *testing.T) {
	if _, err := NewWithClient(DefaultConfig(), nil); err == nil {
		t.Error("NewWithClient(nil) should fail")
	}
}

func TestNewPoolRejectsBlockedConfig(t *testing.T) {
	cfg := DefaultConfig().WithNetwork("host")
	if _, err := NewPool(cfg, 2); err == nil {
		t.Error("NewPool accepted a blocked configuration")
	}
}

func TestFlattenEnv(t *testing.T) {
	if out := flattenEnv(nil); out != nil {
		t.Errorf("flattenEnv(nil) = %v, want nil", out)
	}

	out := flattenEnv(map[string]string{"B": "2", "A": "1"})
	if len(out) != 2 || out[0] != "A=1" || out[1] != "B=2" {
		t.Errorf("flattenEnv = %v, want sorted KEY=value pairs", out)
	}
}
