package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/spf13/cobra"

	"github.com/hkuds/sandgate/internal/sandbox"
	"github.com/hkuds/sandgate/internal/security"
	"github.com/hkuds/sandgate/internal/tui"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the denylist, or audit running containers against it",
	Long: `Without flags, print the blocked host path denylist. With --containers,
connect to the Docker daemon and check every running container's
configuration against the security gate.`,
	RunE: runAudit,
}

var auditContainers bool

func init() {
	auditCmd.Flags().BoolVar(&auditContainers, "containers", false, "audit running containers via the Docker daemon")
}

func runAudit(cmd *cobra.Command, args []string) error {
	if !auditContainers {
		fmt.Print(tui.RenderDenylist(security.BlockedHostPaths()))
		return nil
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	containers, err := cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	results := make([]tui.ContainerResult, 0, len(containers))
	blocked := 0
	for _, c := range containers {
		inspect, err := cli.ContainerInspect(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("failed to inspect container %s: %w", shortID(c.ID), err)
		}

		gateErr := security.ValidateConfig(sandbox.SecurityConfigFromHost(inspect.HostConfig))
		if gateErr != nil {
			blocked++
		}
		results = append(results, tui.ContainerResult{
			Name:  containerName(c.Names, c.ID),
			Image: c.Image,
			Err:   gateErr,
		})
	}

	fmt.Print(tui.RenderAuditReport(results))
	if blocked > 0 {
		return ErrBlocked
	}
	return nil
}

func containerName(names []string, id string) string {
	if len(names) > 0 {
		return strings.TrimPrefix(names[0], "/")
	}
	return shortID(id)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
