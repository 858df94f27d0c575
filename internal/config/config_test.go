package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if cfg.Image != "alpine:latest" {
		t.Errorf("Image = %q, want default", cfg.Image)
	}
	if cfg.Network != "none" {
		t.Errorf("Network = %q, want %q", cfg.Network, "none")
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.json")

	in := &Config{
		Image:           "python:3.11-alpine",
		Binds:           []string{"/home/user/src:/src:ro"},
		Network:         "bridge",
		SeccompProfile:  "default.json",
		ApparmorProfile: "docker-default",
		Env:             map[string]string{"LANG": "C.UTF-8"},
	}
	if err := SaveConfig(in, path); err != nil {
		t.Fatalf("SaveConfig() = %v", err)
	}

	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if out.Image != in.Image {
		t.Errorf("Image = %q, want %q", out.Image, in.Image)
	}
	if len(out.Binds) != 1 || out.Binds[0] != in.Binds[0] {
		t.Errorf("Binds = %v, want %v", out.Binds, in.Binds)
	}
	if out.SeccompProfile != in.SeccompProfile {
		t.Errorf("SeccompProfile = %q, want %q", out.SeccompProfile, in.SeccompProfile)
	}
	if out.Env["LANG"] != "C.UTF-8" {
		t.Errorf("Env = %v", out.Env)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig should fail on invalid JSON")
	}
}

func TestSecurityConfig(t *testing.T) {
	cfg := &Config{
		Binds:           []string{"/var/run/docker.sock:/var/run/docker.sock"},
		Network:         "host",
		SeccompProfile:  "unconfined",
		ApparmorProfile: "unconfined",
	}

	sec := cfg.SecurityConfig()
	if len(sec.Binds) != 1 || sec.Binds[0] != cfg.Binds[0] {
		t.Errorf("Binds = %v", sec.Binds)
	}
	if sec.Network != "host" || sec.SeccompProfile != "unconfined" || sec.ApparmorProfile != "unconfined" {
		t.Errorf("scalar mapping = %+v", sec)
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath('') = %q, want empty", got)
	}

	// Tilde expansion
	result := expandPath("~/test")
	if result == "~/test" {
		t.Error("expandPath should expand tilde")
	}
	if result == "" {
		t.Error("expandPath should return non-empty path")
	}

	// Absolute path passes through
	result = expandPath("/tmp/test")
	if result != "/tmp/test" {
		t.Errorf("expandPath('/tmp/test') = %q, want /tmp/test", result)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sandbox.json")

	if Exists(path) {
		t.Error("Exists should be false before save")
	}
	if err := SaveConfig(DefaultConfig(), path); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Error("Exists should be true after save")
	}
}
