package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// ContainerInfo holds relevant container information
type ContainerInfo struct {
	ID     string
	Name   string
	Labels map[string]string
	Env    map[string]string
}

// Client wraps the Docker API client
type Client struct {
	cli *client.Client
}

// NewClient creates a new Docker client and verifies connectivity
func NewClient(host string) (*Client, error) {
	opts := []client.Opt{
		client.WithAPIVersionNegotiation(),
	}

	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Verify connection
	_, err = cli.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return &Client{cli: cli}, nil
}

// Close closes the Docker client
func (c *Client) Close() error {
	return c.cli.Close()
}

// ListContainers returns all running containers
func (c *Client) ListContainers(ctx context.Context) ([]ContainerInfo, error) {
	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		All: false, // Only running containers
	})
	if err != nil {
		return nil, err
	}

	var result []ContainerInfo
	for _, ctr := range containers {
		info, err := c.GetContainer(ctx, ctr.ID)
		if err != nil {
			continue // Skip containers we can't inspect
		}
		result = append(result, *info)
	}

	return result, nil
}

// GetContainer returns detailed information about a specific container
func (c *Client) GetContainer(ctx context.Context, containerID string) (*ContainerInfo, error) {
	inspect, err := c.cli.ContainerInspect(ctx, containerID)
	if err != nil {
		return nil, err
	}

	// Clean container name (remove leading /)
	name := strings.TrimPrefix(inspect.Name, "/")

	return &ContainerInfo{
		ID:     inspect.ID,
		Name:   name,
		Labels: inspect.Config.Labels,
		Env:    parseEnv(name, inspect.Config.Env),
	}, nil
}

// parseEnv converts the container's declared KEY=VALUE environment list into
// a map. Entries without a separator are reported, not silently dropped.
func parseEnv(containerName string, env []string) map[string]string {
	result := make(map[string]string, len(env))
	for _, e := range env {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) != 2 {
			slog.Debug("skipping malformed environment entry",
				"container", containerName,
				"entry", e,
			)
			continue
		}
		result[parts[0]] = parts[1]
	}
	return result
}

// ExecResult contains the result of a container exec
type ExecResult struct {
	ExitCode int
	Output   []byte
}

// Exec runs a command in a container with extra environment variables and
// returns its exit code along with the combined stdout/stderr output.
func (c *Client) Exec(ctx context.Context, containerID string, cmd []string, env map[string]string) (*ExecResult, error) {
	execConfig := container.ExecOptions{
		Cmd:          cmd,
		Env:          flattenEnv(env),
		AttachStdout: true,
		AttachStderr: true,
	}

	execID, err := c.cli.ContainerExecCreate(ctx, containerID, execConfig)
	if err != nil {
		return nil, err
	}

	resp, err := c.cli.ContainerExecAttach(ctx, execID.ID, container.ExecStartOptions{})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	// Read output - demultiplex Docker stream
	var stdout, stderr bytes.Buffer
	_, err = stdcopy.StdCopy(&stdout, &stderr, resp.Reader)
	if err != nil {
		return nil, err
	}

	// Get exit code
	inspectResp, err := c.cli.ContainerExecInspect(ctx, execID.ID)
	if err != nil {
		return nil, err
	}

	output := stdout.Bytes()
	if stderr.Len() > 0 {
		output = append(output, stderr.Bytes()...)
	}

	return &ExecResult{
		ExitCode: inspectResp.ExitCode,
		Output:   output,
	}, nil
}

func flattenEnv(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// CopyFrom fetches a path from the container's filesystem as a tar stream.
// The caller must close the returned reader; nothing is buffered here.
func (c *Client) CopyFrom(ctx context.Context, containerID, path string) (io.ReadCloser, error) {
	reader, _, err := c.cli.CopyFromContainer(ctx, containerID, path)
	if err != nil {
		return nil, err
	}
	return reader, nil
}
