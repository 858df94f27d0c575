package sandbox

import (
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"

	"github.com/hkuds/sandgate/internal/security"
)

// SecurityConfigFromHost extracts the gate-relevant slice of an existing
// Docker HostConfig: bind specifications, the network mode, and any seccomp
// or AppArmor selection carried in SecurityOpt entries. It lets external or
// already-running container configurations be audited with the same checks
// a new sandbox goes through.
func SecurityConfigFromHost(hc *container.HostConfig) security.Config {
	if hc == nil {
		return security.Config{}
	}

	cfg := security.Config{
		Network: string(hc.NetworkMode),
	}

	cfg.Binds = append(cfg.Binds, hc.Binds...)
	for _, m := range hc.Mounts {
		if m.Type == mount.TypeBind {
			bind := m.Source + ":" + m.Target
			if m.ReadOnly {
				bind += ":ro"
			}
			cfg.Binds = append(cfg.Binds, bind)
		}
	}

	for _, opt := range hc.SecurityOpt {
		// Docker accepts both "seccomp=profile" and the legacy
		// "seccomp:profile" form.
		key, value, ok := splitSecurityOpt(opt)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "seccomp":
			cfg.SeccompProfile = value
		case "apparmor":
			cfg.ApparmorProfile = value
		}
	}

	return cfg
}

func splitSecurityOpt(opt string) (key, value string, ok bool) {
	if k, v, found := strings.Cut(opt, "="); found {
		return strings.TrimSpace(k), strings.TrimSpace(v), true
	}
	if k, v, found := strings.Cut(opt, ":"); found {
		return strings.TrimSpace(k), strings.TrimSpace(v), true
	}
	return "", "", false
}
