package security

import "strings"

// Blocked scalar values. Members are lower-case; matching is
// case-insensitive on trimmed input.
var (
	blockedNetworkModes     = map[string]bool{"host": true}
	blockedSeccompProfiles  = map[string]bool{"unconfined": true}
	blockedApparmorProfiles = map[string]bool{"unconfined": true}
)

// Config is the security-relevant slice of a sandbox configuration. Every
// field is optional; an absent value means the runtime default, which this
// layer treats as safe.
type Config struct {
	// Binds are bind mount specifications of the form
	// source[:target[:mode]].
	Binds []string

	// Network is the container network mode.
	Network string

	// SeccompProfile is the seccomp profile reference.
	SeccompProfile string

	// ApparmorProfile is the AppArmor profile reference.
	ApparmorProfile string
}

// ValidateConfig runs the full gate: bind mounts, then network mode, then
// seccomp profile, then AppArmor profile. The first violation aborts the
// remaining checks. A nil return means the configuration may proceed to
// container creation.
func ValidateConfig(cfg Config) error {
	if err := ValidateBinds(cfg.Binds); err != nil {
		return err
	}
	if err := ValidateNetworkMode(cfg.Network); err != nil {
		return err
	}
	if err := ValidateSeccompProfile(cfg.SeccompProfile); err != nil {
		return err
	}
	return ValidateApparmorProfile(cfg.ApparmorProfile)
}

// ValidateBinds checks each bind mount in input order and fails on the first
// violation; it does not continue scanning to report all of them. Blank
// entries are skipped, and an empty or nil list is valid.
func ValidateBinds(binds []string) error {
	for _, raw := range binds {
		bind := strings.TrimSpace(raw)
		if bind == "" {
			continue
		}
		if v := CheckBind(bind); v != nil {
			return v
		}
	}
	return nil
}

// ValidateNetworkMode rejects blocked network modes. The comparison is
// case-insensitive; the error preserves the caller's original value.
func ValidateNetworkMode(network string) error {
	if blockedNetworkModes[strings.ToLower(strings.TrimSpace(network))] {
		return &NetworkModeError{Mode: network}
	}
	return nil
}

// ValidateSeccompProfile rejects blocked seccomp profile references.
func ValidateSeccompProfile(profile string) error {
	if blockedSeccompProfiles[strings.ToLower(strings.TrimSpace(profile))] {
		return &SeccompProfileError{Profile: profile}
	}
	return nil
}

// ValidateApparmorProfile rejects blocked AppArmor profile references.
func ValidateApparmorProfile(profile string) error {
	if blockedApparmorProfiles[strings.ToLower(strings.TrimSpace(profile))] {
		return &ApparmorProfileError{Profile: profile}
	}
	return nil
}
