// Package tui renders security gate results for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Report styles.
var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205")).
				MarginBottom(1).
				Padding(0, 1)

	reportBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Width(72)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	subjectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// RenderVerdict renders the outcome of a gate check for one subject.
func RenderVerdict(subject string, err error) string {
	var sb strings.Builder

	if err == nil {
		sb.WriteString(passStyle.Render("PASS"))
	} else {
		sb.WriteString(failStyle.Render("BLOCKED"))
	}
	sb.WriteString("  ")
	sb.WriteString(subjectStyle.Render(subject))
	if err != nil {
		sb.WriteString("\n")
		sb.WriteString(detailStyle.Render("  " + err.Error()))
	}

	return sb.String()
}

// RenderDenylist renders the blocked host path set for audit output.
func RenderDenylist(paths []string) string {
	var sb strings.Builder

	title := reportTitleStyle.Render("Blocked Host Paths")
	sb.WriteString(title)
	sb.WriteString("\n")

	var body strings.Builder
	for _, p := range paths {
		body.WriteString(pathStyle.Render(p))
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(detailStyle.Render(fmt.Sprintf("%d entries; mounting any of these, or an ancestor, is rejected.", len(paths))))

	sb.WriteString(reportBoxStyle.Render(strings.TrimRight(body.String(), "\n")))
	sb.WriteString("\n")

	return sb.String()
}

// ContainerResult pairs a container with its gate outcome.
type ContainerResult struct {
	// Name is the container's primary name, or a truncated ID.
	Name string

	// Image is the container image reference.
	Image string

	// Err is the gate violation, nil when the container's configuration
	// passes.
	Err error
}

// RenderAuditReport renders gate results for a set of containers.
func RenderAuditReport(results []ContainerResult) string {
	var sb strings.Builder

	title := reportTitleStyle.Render("Container Audit")
	sb.WriteString(title)
	sb.WriteString("\n")

	if len(results) == 0 {
		sb.WriteString(detailStyle.Render("no running containers"))
		sb.WriteString("\n")
		return sb.String()
	}

	blocked := 0
	for _, r := range results {
		subject := r.Name
		if r.Image != "" {
			subject = fmt.Sprintf("%s (%s)", r.Name, r.Image)
		}
		sb.WriteString(RenderVerdict(subject, r.Err))
		sb.WriteString("\n")
		if r.Err != nil {
			blocked++
		}
	}

	sb.WriteString("\n")
	summary := fmt.Sprintf("%d container(s) checked, %d with violations", len(results), blocked)
	if blocked > 0 {
		sb.WriteString(failStyle.Render(summary))
	} else {
		sb.WriteString(passStyle.Render(summary))
	}
	sb.WriteString("\n")

	return sb.String()
}
