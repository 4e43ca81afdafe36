package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func newCommandPicker(t *testing.T, command string) *CommandPicker {
	t.Helper()
	p := NewCommandPicker(command, afero.NewOsFs())
	p.Dir = t.TempDir()
	return p
}

func TestCommandPickerWritesOutput(t *testing.T) {
	p := newCommandPicker(t, "printf 'q=%s' {quality} > {output}")

	asset, err := p.Pick(context.Background(), PickOptions{Quality: 0.8})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if asset == nil {
		t.Fatalf("expected an asset")
	}
	data, err := os.ReadFile(asset.URI)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if string(data) != "q=0.8" || asset.Size != 5 {
		t.Fatalf("unexpected capture %q size %d", data, asset.Size)
	}
	if filepath.Dir(asset.URI) != p.Dir {
		t.Fatalf("capture written outside Dir: %s", asset.URI)
	}
}

func TestCommandPickerCancellation(t *testing.T) {
	for _, command := range []string{"exit 130", "true"} {
		p := newCommandPicker(t, command)
		asset, err := p.Pick(context.Background(), PickOptions{})
		if asset != nil || err != nil {
			t.Fatalf("%q: Pick = %v, %v; want cancel", command, asset, err)
		}
	}
}

func TestCommandPickerFailure(t *testing.T) {
	p := newCommandPicker(t, "echo no camera >&2; exit 3")
	if _, err := p.Pick(context.Background(), PickOptions{}); err == nil {
		t.Fatalf("expected failure for non-zero exit")
	}

	p = newCommandPicker(t, "  ")
	if _, err := p.Pick(context.Background(), PickOptions{}); !errors.Is(err, ErrNoCaptureCommand) {
		t.Fatalf("expected ErrNoCaptureCommand, got %v", err)
	}
}

func TestFilePicker(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/pics/a.jpg", []byte("abc"), 0o644)
	_ = fs.MkdirAll("/pics/dir", 0o755)
	p := NewFilePicker(fs)

	asset, err := p.Pick(context.Background(), PickOptions{Path: "  "})
	if asset != nil || err != nil {
		t.Fatalf("blank path should cancel, got %v %v", asset, err)
	}
	asset, err = p.Pick(context.Background(), PickOptions{Path: "/pics/a.jpg"})
	if err != nil || asset.URI != "/pics/a.jpg" || asset.Size != 3 {
		t.Fatalf("Pick = %+v, %v", asset, err)
	}
	if _, err := p.Pick(context.Background(), PickOptions{Path: "/pics/missing.jpg"}); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := p.Pick(context.Background(), PickOptions{Path: "/pics/dir"}); err == nil {
		t.Fatalf("expected error for directory")
	}
}
