package binmerge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"mergehelper/internal/services"
)

// Merger defines the behaviour the sweep needs from the merge tool: read the
// cue sheet at cuePath, write a merged <outputName>.bin/.cue pair into outDir,
// and return the tool's captured output lines.
type Merger interface {
	Merge(ctx context.Context, cuePath, outputName, outDir string) ([]string, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client invokes the binmerge script through a Python interpreter.
type Client struct {
	python  string
	script  string
	timeout time.Duration
	exec    Executor
}

// New constructs a binmerge client.
func New(pythonBinary, scriptPath string, timeoutSeconds int, opts ...Option) (*Client, error) {
	pythonBinary = strings.TrimSpace(pythonBinary)
	if pythonBinary == "" {
		return nil, errors.New("python binary required")
	}
	scriptPath = strings.TrimSpace(scriptPath)
	if scriptPath == "" {
		return nil, errors.New("binmerge script path required")
	}
	client := &Client{
		python:  pythonBinary,
		script:  scriptPath,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Merge runs binmerge synchronously and returns every output line it emitted.
// On failure the captured lines are still returned so callers can log the
// tool's diagnostics.
func (c *Client) Merge(ctx context.Context, cuePath, outputName, outDir string) ([]string, error) {
	if strings.TrimSpace(cuePath) == "" {
		return nil, services.Wrap(services.ErrValidation, "binmerge", "merge", "cue sheet path required", nil)
	}
	if strings.TrimSpace(outputName) == "" {
		return nil, services.Wrap(services.ErrValidation, "binmerge", "merge", "output name required", nil)
	}
	if strings.TrimSpace(outDir) == "" {
		return nil, services.Wrap(services.ErrValidation, "binmerge", "merge", "output directory required", nil)
	}

	mergeCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		mergeCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{c.script, cuePath, outputName, "-o", outDir}

	var mu sync.Mutex
	var lines []string
	err := c.exec.Run(mergeCtx, c.python, args, func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	})
	if err != nil {
		if errors.Is(mergeCtx.Err(), context.DeadlineExceeded) {
			return lines, services.Wrap(services.ErrTimeout, "binmerge", "merge",
				fmt.Sprintf("tool exceeded %s", c.timeout), err)
		}
		return lines, services.Wrap(services.ErrExternalTool, "binmerge", "merge", "tool exited nonzero", err)
	}
	return lines, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
