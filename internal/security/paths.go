package security

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// blockedHostPaths lists host paths that must never be reachable from inside
// a sandbox. Every entry is absolute, already normalized, and has no trailing
// separator. Slice order is match order: the first entry that targets or is
// covered by a candidate path wins.
//
// Nested entries (e.g. /run and /run/docker.sock) and platform aliases
// (/private/etc on macOS) are kept as independent literals rather than being
// derived from each other.
var blockedHostPaths = []string{
	"/boot",
	"/dev",
	"/etc",
	"/private/etc",
	"/private/var/run",
	"/private/var/run/docker.sock",
	"/proc",
	"/root",
	"/run",
	"/run/containerd",
	"/run/crio",
	"/run/docker.sock",
	"/run/podman",
	"/run/user",
	"/sys",
	"/tmp/podman.sock",
	"/var/run",
	"/var/run/containerd",
	"/var/run/crio",
	"/var/run/docker.sock",
	"/xdg_runtime_dir",
}

// BlockedHostPaths returns a copy of the blocked host path denylist, in match
// order, for use by auditing and reporting tools.
func BlockedHostPaths() []string {
	paths := make([]string, len(blockedHostPaths))
	copy(paths, blockedHostPaths)
	return paths
}

// Real-path resolution touches the filesystem; these indirections let tests
// substitute deterministic behavior.
var (
	statPath     = os.Stat
	evalSymlinks = filepath.EvalSymlinks
)

// NormalizeHostPath canonicalizes a raw path string: surrounding whitespace
// is trimmed, "." and ".." segments are resolved lexically, repeated
// separators collapse, and a trailing separator is dropped. An empty result
// becomes the root path. Purely lexical, no filesystem access, and
// idempotent.
func NormalizeHostPath(raw string) string {
	normalized := path.Clean(strings.TrimSpace(raw))
	if normalized == "" || normalized == "." {
		return "/"
	}
	return normalized
}

// ParseBindSource extracts the host-side source from a source[:target[:mode]]
// bind specification. If there is no separator, or the string starts with
// one, the whole trimmed string is treated as the source; malformed input is
// passed through for downstream checks to classify.
func ParseBindSource(bind string) string {
	trimmed := strings.TrimSpace(bind)
	idx := strings.Index(trimmed, ":")
	if idx <= 0 {
		return trimmed
	}
	return trimmed[:idx]
}

// matchBlocked tests one normalized source path against the denylist. The
// lexical pass and the real-path pass share this containment logic.
//
// For each entry, "targets" (source equals the entry or is nested inside it)
// takes precedence over "covers" (source is the root or a proper ancestor of
// the entry). Mounting an ancestor matters because it transitively exposes
// everything beneath it, including entries the mount string never names.
func matchBlocked(bind, source string) *BindViolation {
	for _, blocked := range blockedHostPaths {
		if source == blocked || strings.HasPrefix(source, blocked+"/") {
			return &BindViolation{Bind: bind, Kind: BindTargets, Path: blocked}
		}
		if source == "/" || strings.HasPrefix(blocked, source+"/") {
			return &BindViolation{Bind: bind, Kind: BindCovers, Path: blocked}
		}
	}
	return nil
}

// MatchBindSource runs the string-only denylist check on a bind
// specification: parse the source, reject non-absolute sources, normalize,
// and match against the denylist. It never touches the filesystem, so it is
// safe for dry-run audits.
func MatchBindSource(bind string) *BindViolation {
	source := ParseBindSource(bind)
	if !strings.HasPrefix(source, "/") {
		return &BindViolation{Bind: bind, Kind: BindNonAbsolute, Path: source}
	}
	return matchBlocked(bind, NormalizeHostPath(source))
}

// resolveRealPath resolves an absolute path that exists on the host to its
// canonical real path, following symlinks, and re-normalizes the result.
// Non-existent paths and resolution failures fall back to the input path
// unchanged; the lexical check has already run, so resolution errors never
// widen what the gate admits.
func resolveRealPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		return p
	}
	if _, err := statPath(p); err != nil {
		return p
	}
	resolved, err := evalSymlinks(p)
	if err != nil {
		return p
	}
	return NormalizeHostPath(resolved)
}

// CheckBind validates a single bind specification: the lexical denylist
// check first, then, when the source resolves to a different real path on
// the host, the same containment test against the resolved path. The second
// pass catches a symlink placed at an innocuous-looking location that points
// into a blocked directory.
func CheckBind(bind string) *BindViolation {
	if v := MatchBindSource(bind); v != nil {
		return v
	}
	normalized := NormalizeHostPath(ParseBindSource(bind))
	if resolved := resolveRealPath(normalized); resolved != normalized {
		return matchBlocked(bind, resolved)
	}
	return nil
}
