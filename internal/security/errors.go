package security

import "fmt"

// BindViolationKind classifies why a bind mount was rejected.
type BindViolationKind int

const (
	// BindTargets means the source path equals a blocked path or lives
	// inside one.
	BindTargets BindViolationKind = iota

	// BindCovers means the source path is an ancestor of a blocked path, so
	// mounting it would transitively expose the blocked path.
	BindCovers

	// BindNonAbsolute means the source is not an absolute filesystem path
	// (a relative path or a named volume reference).
	BindNonAbsolute
)

// BindViolation describes a rejected bind mount.
type BindViolation struct {
	// Bind is the original bind specification as given by the caller.
	Bind string

	// Kind is the reason the bind was rejected.
	Kind BindViolationKind

	// Path is the blocked host path that matched, or the offending source
	// string for BindNonAbsolute.
	Path string
}

func (v *BindViolation) Error() string {
	switch v.Kind {
	case BindCovers:
		return fmt.Sprintf("bind mount %q covers blocked path %q. Mounting an ancestor exposes everything beneath it; mount a project-specific directory instead.", v.Bind, v.Path)
	case BindNonAbsolute:
		return fmt.Sprintf("bind mount %q uses a non-absolute source path %q. Relative paths and named volumes cannot be verified against the host; use an absolute project path instead.", v.Bind, v.Path)
	default:
		return fmt.Sprintf("bind mount %q targets blocked path %q. Mount a project-specific directory instead of a sensitive host path.", v.Bind, v.Path)
	}
}

// NetworkModeError is returned when a blocked network mode is selected.
type NetworkModeError struct {
	// Mode is the network mode as given by the caller, original casing
	// preserved.
	Mode string
}

func (e *NetworkModeError) Error() string {
	return fmt.Sprintf("network mode %q is blocked. It removes network isolation from the sandbox; use %q or %q instead.", e.Mode, "bridge", "none")
}

// SeccompProfileError is returned when a blocked seccomp profile is selected.
type SeccompProfileError struct {
	// Profile is the profile reference as given by the caller.
	Profile string
}

func (e *SeccompProfileError) Error() string {
	return fmt.Sprintf("seccomp profile %q is blocked. It disables syscall filtering; use the runtime default profile instead.", e.Profile)
}

// ApparmorProfileError is returned when a blocked AppArmor profile is selected.
type ApparmorProfileError struct {
	// Profile is the profile reference as given by the caller.
	Profile string
}

func (e *ApparmorProfileError) Error() string {
	return fmt.Sprintf("apparmor profile %q is blocked. It disables mandatory access control; use the runtime default profile instead.", e.Profile)
}
