// Package sandbox provides a gated container-based execution environment.
//
// Every configuration passes through the security gate in
// internal/security before a Docker client is even constructed: blocked
// bind mounts (sensitive host paths, ancestors that would expose them,
// symlink escapes), network mode "host", and "unconfined" seccomp or
// AppArmor profiles are all rejected with a descriptive error.
//
// # Sandbox Container
//
// The Sandbox type creates Docker containers with:
//   - ReadonlyRootfs: Prevents modification of the container filesystem
//   - NetworkMode "none" by default: Network isolation
//   - CapDrop ALL: Drops all Linux capabilities
//   - SecurityOpt "no-new-privileges": Prevents privilege escalation
//   - Optional seccomp/AppArmor profile selection (gated)
//   - Memory, CPU, and PID limits: Resource constraints
//   - Tmpfs mounts: Writable areas without persistence
//   - Sanitized environment: Credential-bearing variables are stripped
//   - AutoRemove: Automatic cleanup when stopped
//   - User "nobody": Unprivileged execution
//
// # Auditing
//
// SecurityConfigFromHost extracts the gate-relevant fields from an existing
// container.HostConfig, so configurations that did not originate here can be
// checked against the same denylists.
//
// # Sandbox Pool
//
// The Pool type maintains a pool of pre-warmed containers for faster
// execution. The shared configuration is validated once at pool
// construction.
//
// # Usage
//
// Basic sandbox usage:
//
//	cfg := sandbox.DefaultConfig().
//	    WithImage("python:3.11-alpine").
//	    AddMount("/home/user/project", "/workspace/project", true)
//
//	sb, err := sandbox.New(cfg)
//	if err != nil {
//	    log.Fatal(err) // includes security gate rejections
//	}
//	defer sb.Close()
//
//	if err := sb.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
package sandbox
