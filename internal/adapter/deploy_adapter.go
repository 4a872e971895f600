package adapter

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	m "tracehook.dev/pkg/tracehook/internal/model"
)

// DeployResult is the asynchronous outcome of a deployment.
type DeployResult struct {
	Device  string
	Success bool
	Detail  string
}

// Deployer installs a staged package on a device.
type Deployer interface {
	// Deploy starts the installation and returns a channel that receives
	// exactly one result and is then closed.
	Deploy(ctx context.Context, staged m.Path, device string) <-chan DeployResult
}

// ADBDeployer installs packages with `adb install -r`.
type ADBDeployer struct {
	binary  string
	timeout time.Duration
}

// NewADBDeployer constructs an ADBDeployer. An empty binary means "adb" on PATH.
func NewADBDeployer(binary string) *ADBDeployer {
	if binary == "" {
		binary = "adb"
	}

	return &ADBDeployer{
		binary:  binary,
		timeout: 2 * time.Minute,
	}
}

// Deploy runs adb in the background.
func (d *ADBDeployer) Deploy(ctx context.Context, staged m.Path, device string) <-chan DeployResult {
	out := make(chan DeployResult, 1)

	go func() {
		defer close(out)

		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		args := []string{}
		if device != "" {
			args = append(args, "-s", device)
		}

		args = append(args, "install", "-r", string(staged))

		cmd := exec.CommandContext(ctx, d.binary, args...)

		var stdout, stderr bytes.Buffer

		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		output := strings.TrimSpace(stdout.String() + stderr.String())

		// adb reports some failures with a zero exit status.
		if err == nil && strings.Contains(output, "Failure") {
			out <- DeployResult{Device: device, Success: false, Detail: output}
			return
		}

		if err != nil {
			slog.Error("Failed to install package", "device", device, "package", staged, "error", err, "output", output)
			out <- DeployResult{Device: device, Success: false, Detail: strings.TrimSpace(err.Error() + ": " + output)}

			return
		}

		slog.Debug("installed package", "device", device, "package", staged)
		out <- DeployResult{Device: device, Success: true, Detail: output}
	}()

	return out
}
