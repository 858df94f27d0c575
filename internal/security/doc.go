// Package security is a pre-flight gate for container sandbox configurations.
//
// Before a sandbox container is created, its security-relevant configuration
// (bind mounts, network mode, seccomp profile, AppArmor profile) is checked
// against a fixed denylist of dangerous host exposures. The gate catches
// foot-guns and templated config values that would silently defeat container
// isolation, such as:
//
//   - Mounting system directories (/etc, /proc, /sys, /root)
//   - Exposing the Docker control socket (/var/run/docker.sock)
//   - Mounting an ancestor of a sensitive path (/var transitively exposes
//     /var/run/docker.sock)
//   - Smuggling a symlink at an innocuous-looking location that points into
//     a blocked directory
//   - Disabling isolation via network mode "host" or an "unconfined"
//     seccomp/AppArmor profile
//
// The threat model is locally-trusted but fallible configuration. The gate
// does not defend against a malicious operator with root access and enforces
// nothing at the kernel level; it only decides whether a configuration may
// proceed to container creation.
//
// # Validation Checks
//
// ValidateConfig runs, in order:
//
//   - Bind mounts: each source path is parsed, normalized, and tested against
//     the blocked host path denylist in both directions (the path targets a
//     blocked path, or covers one by being its ancestor). Paths that exist on
//     the host get a second pass against their symlink-resolved real path.
//   - Network mode: "host" is blocked.
//   - Seccomp profile: "unconfined" is blocked.
//   - AppArmor profile: "unconfined" is blocked.
//
// The first violation aborts the remaining checks. Each validator is also
// exported individually so callers can check a single dimension, and
// MatchBindSource exposes the I/O-free lexical pass for dry-run audits.
//
// All denylists are read-only package constants; every function is safe for
// concurrent use.
package security
