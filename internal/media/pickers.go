package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ExitCancelled is the exit status a capture command uses to report that the
// user backed out.
const ExitCancelled = 130

// ErrNoCaptureCommand is returned when no image.capture-command is configured.
var ErrNoCaptureCommand = errors.New("no capture command configured")

// CommandPicker captures a photo by running an external command. The command
// is run through sh; {output} expands to the file it must write and {quality}
// to the requested JPEG quality in [0, 1].
type CommandPicker struct {
	Command string
	// Dir receives captured files; empty uses the OS temp dir.
	Dir string
	Fs  afero.Fs

	now func() time.Time
}

// NewCommandPicker returns a picker for the configured capture command.
func NewCommandPicker(command string, fsys afero.Fs) *CommandPicker {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &CommandPicker{Command: command, Fs: fsys, now: time.Now}
}

func (p *CommandPicker) Pick(ctx context.Context, opts PickOptions) (*Asset, error) {
	if strings.TrimSpace(p.Command) == "" {
		return nil, ErrNoCaptureCommand
	}
	dir := p.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	now := time.Now
	if p.now != nil {
		now = p.now
	}
	output := filepath.Join(dir, fmt.Sprintf("civiceye-capture-%d.jpg", now().UnixNano()))

	expanded := strings.NewReplacer(
		"{output}", shellQuote(output),
		"{quality}", strconv.FormatFloat(opts.Quality, 'f', -1, 64),
	).Replace(p.Command)

	//nolint:gosec // G204: Command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, "sh", "-c", expanded)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == ExitCancelled {
			return nil, nil
		}
		return nil, fmt.Errorf("capture command: %w: %s", err, strings.TrimSpace(string(out)))
	}

	info, err := p.Fs.Stat(output)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat capture: %w", err)
	}
	return &Asset{URI: output, Size: info.Size()}, nil
}

// FilePicker "picks" the file whose path the user typed. An empty path cancels.
type FilePicker struct {
	Fs afero.Fs
}

// NewFilePicker returns a picker reading from fsys.
func NewFilePicker(fsys afero.Fs) *FilePicker {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FilePicker{Fs: fsys}
}

func (p *FilePicker) Pick(_ context.Context, opts PickOptions) (*Asset, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, nil
	}
	path = expandHome(path)
	info, err := p.Fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &Asset{URI: path, Size: info.Size()}, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
