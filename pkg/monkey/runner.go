/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: runner.go
Description: Process runner for DroidStress. Spawns one command as a child process,
merges stdout and stderr into a single stream, forwards every line to the logging
sink as it arrives, and converts all failures into result values so a broken
package never stops the rest of the session.
*/

package monkey

import (
	"bufio"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kleascm/droidstress/pkg/interfaces"
)

// RunStatus classifies the outcome of a single package run
type RunStatus int

const (
	// StatusCompleted means the process ran and exited zero
	StatusCompleted RunStatus = iota
	// StatusSpawnFailed means the command could not be launched at all
	StatusSpawnFailed
	// StatusCommandFailed means the process launched but exited non-zero
	StatusCommandFailed
	// StatusStreamError means draining the output stream failed
	StatusStreamError
)

// String returns a human-readable status name
func (s RunStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusSpawnFailed:
		return "spawn_failed"
	case StatusCommandFailed:
		return "command_failed"
	case StatusStreamError:
		return "stream_error"
	default:
		return "unknown"
	}
}

// RunResult is the outcome of one package run. Failures are values, never
// errors; the log stream is the only record kept beyond this value.
type RunResult struct {
	Package  string
	ExitCode int
	Status   RunStatus
	Error    string
	Duration time.Duration
}

// Failed reports whether the run ended in any failure state
func (r *RunResult) Failed() bool {
	return r.Status != StatusCompleted
}

// PackageRunner runs the command for one package to completion
type PackageRunner interface {
	Run(pkg string, spec CommandSpec) *RunResult
}

// ProcessRunner executes commands as child processes, forwarding every
// combined stdout/stderr line to the sink as it is read. There is no
// orchestrator-side timeout: the device-side monkey self-limits through
// its --running-minutes argument, so a run always ends at natural process
// exit.
type ProcessRunner struct {
	sink interfaces.Sink
}

// NewProcessRunner creates a process runner writing to the given sink
func NewProcessRunner(sink interfaces.Sink) *ProcessRunner {
	return &ProcessRunner{sink: sink}
}

// Run spawns the command and blocks until it exits. Output lines reach the
// sink in arrival order for this process; interleaving with sibling
// processes is unspecified.
func (p *ProcessRunner) Run(pkg string, spec CommandSpec) *RunResult {
	result := &RunResult{Package: pkg, Status: StatusCompleted, ExitCode: -1}
	start := time.Now()

	pr, pw, err := os.Pipe()
	if err != nil {
		result.Status = StatusSpawnFailed
		result.Error = err.Error()
		p.sink.Error("Failed to create output pipe", map[string]interface{}{
			"package": pkg,
			"error":   err.Error(),
		})
		return result
	}

	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Stdout = pw
	cmd.Stderr = pw

	p.sink.Info("Executing command", map[string]interface{}{
		"package": pkg,
		"command": spec.String(),
	})

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		result.Status = StatusSpawnFailed
		result.Error = err.Error()
		result.Duration = time.Since(start)
		p.sink.Error("Failed to spawn command", map[string]interface{}{
			"package": pkg,
			"error":   err.Error(),
		})
		return result
	}

	// The child holds its own copy of the write end; close ours so the
	// read side sees EOF once the child exits.
	pw.Close()

	var lastLine string
	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		p.sink.Info(line, map[string]interface{}{"package": pkg})
		if line != "" {
			lastLine = line
		}
	}
	streamErr := scanner.Err()
	pr.Close()

	waitErr := cmd.Wait()
	result.Duration = time.Since(start)
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case streamErr != nil:
		result.Status = StatusStreamError
		result.Error = streamErr.Error()
		p.sink.Error("Failed to drain command output", map[string]interface{}{
			"package": pkg,
			"error":   streamErr.Error(),
		})

	case waitErr != nil:
		result.Status = StatusCommandFailed
		result.Error = lastLine
		if result.Error == "" {
			result.Error = waitErr.Error()
		}
		p.sink.Error("Package run failed", map[string]interface{}{
			"package":   pkg,
			"exit_code": result.ExitCode,
			"error":     result.Error,
		})

	default:
		p.sink.Info("Package run completed", map[string]interface{}{
			"package":  pkg,
			"duration": result.Duration,
		})
	}

	return result
}
