// Package shell provides the script host used by export transforms.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
)

// Shell is the interpreter scripts run under.
const Shell = "sh"

// Executor implements ports.ScriptHost by running scripts with sh -c.
type Executor struct {
	logger ports.Logger
}

var _ ports.ScriptHost = (*Executor)(nil)

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Transform pipes input through script and returns what it writes to stdout.
// env is merged over the process environment. Stderr is forwarded to the logger.
func (e *Executor) Transform(ctx context.Context, script string, input []byte, env map[string]string) ([]byte, error) {
	cmdEnv := resolveEnvironment(os.Environ(), env)

	executable := Shell
	if lp, err := lookPath(Shell, cmdEnv); err == nil {
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, "-c", script) //nolint:gosec // user provided script
	cmd.Args[0] = Shell
	cmd.Env = cmdEnv
	cmd.Stdin = bytes.NewReader(input)

	var stdout bytes.Buffer
	stderr := &logWriter{logger: e.logger}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stderr.flush()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return stdout.Bytes(), nil
}

// logWriter forwards complete lines to the logger as warnings.
type logWriter struct {
	logger  ports.Logger
	pending []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.pending[:i]))
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) flush() {
	if len(w.pending) > 0 {
		w.emit(string(w.pending))
		w.pending = nil
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line != "" {
		w.logger.Warn(line)
	}
}

// resolveEnvironment overlays env on the system environment. The result is sorted.
func resolveEnvironment(sysEnv []string, env map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(env))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range env {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
