package containerizer

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"
)

// DaemonInfo describes a reachable Docker daemon.
type DaemonInfo struct {
	APIVersion string
	OSType     string
}

// PingDaemon checks that the Docker daemon answers on host, or on the
// DOCKER_HOST from the environment when host is empty.
func PingDaemon(ctx context.Context, host string) (DaemonInfo, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return DaemonInfo{}, fmt.Errorf("create docker client: %w", err)
	}
	defer cli.Close()

	ping, err := cli.Ping(ctx)
	if err != nil {
		return DaemonInfo{}, fmt.Errorf("docker ping: %w", err)
	}
	if ping.APIVersion == "" {
		return DaemonInfo{}, fmt.Errorf("docker ping returned empty API version")
	}
	return DaemonInfo{APIVersion: ping.APIVersion, OSType: ping.OSType}, nil
}
