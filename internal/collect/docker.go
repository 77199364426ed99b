package collect

import (
	"context"
	"strings"

	"github.com/devdash/devdash/internal/errors"
	"github.com/devdash/devdash/internal/exec"
)

const (
	// MaxContainers caps the container records kept per cycle.
	MaxContainers = 12
	// NoContainers is the display placeholder for an empty list.
	NoContainers = "no running containers"

	dockerFormat = "{{.ID}}\t{{.Names}}\t{{.Status}}\t{{.Image}}\t{{.Ports}}"
)

// CollectDocker lists running containers through the docker CLI.
func CollectDocker(ctx context.Context, run exec.Runner) DockerStatus {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	out, err := run.Run(ctx, "", "docker", "ps", "--format", dockerFormat)
	if err != nil {
		return DockerStatus{Running: []string{}, Items: []DockerContainer{}, Error: errors.Summary(err)}
	}
	return ParseDockerPS(out)
}

// ParseDockerPS parses tab-separated `docker ps --format` output. Missing
// columns fall back to "unknown" (or "none" for ports).
func ParseDockerPS(text string) DockerStatus {
	items := []DockerContainer{}
	for _, line := range strings.Split(text, "\n") {
		if len(items) == MaxContainers {
			break
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.Split(line, "\t")
		items = append(items, DockerContainer{
			ID:     field(f, 0, ""),
			Name:   field(f, 1, "unknown"),
			Status: field(f, 2, "unknown"),
			Image:  field(f, 3, "unknown"),
			Ports:  field(f, 4, "none"),
		})
	}

	running := make([]string, 0, DisplayLimit)
	for i, c := range items {
		if i == DisplayLimit {
			break
		}
		running = append(running, c.Line())
	}
	if len(running) == 0 {
		running = append(running, NoContainers)
	}

	return DockerStatus{Running: running, Items: items}
}

// field returns f[i], or def when the column is absent.
func field(f []string, i int, def string) string {
	if i < len(f) {
		return f[i]
	}
	return def
}
