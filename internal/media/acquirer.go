package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"civiceye/internal/config"
	"civiceye/internal/debug"
	"civiceye/internal/domain"
	appErrors "civiceye/internal/errors"
)

// Acquirer is the entry point for capturing, picking and validating images.
type Acquirer struct {
	cfg     config.Image
	perms   Permissions
	camera  Picker
	gallery Picker
	fs      afero.Fs
	now     func() time.Time
}

// NewAcquirer wires the pickers. A nil fs uses the OS filesystem.
func NewAcquirer(cfg config.Image, perms Permissions, camera, gallery Picker, fsys afero.Fs) *Acquirer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = config.DefaultImageMaxSize
	}
	if cfg.Quality <= 0 || cfg.Quality > 1 {
		cfg.Quality = 0.8
	}
	return &Acquirer{
		cfg:     cfg,
		perms:   perms,
		camera:  camera,
		gallery: gallery,
		fs:      fsys,
		now:     time.Now,
	}
}

// MaxSize returns the configured size limit in bytes.
func (a *Acquirer) MaxSize() int64 {
	return a.cfg.MaxSize
}

// Capture takes a photo with the camera. It returns (nil, nil) when cancelled.
func (a *Acquirer) Capture(ctx context.Context) (*domain.Image, error) {
	granted, err := a.perms.RequestCamera(ctx)
	if err != nil || !granted {
		return nil, appErrors.New(appErrors.CodePermissionDenied, "Camera permission denied", err)
	}
	asset, err := a.camera.Pick(ctx, a.pickOptions(""))
	if err != nil {
		debug.Logf("media: camera failed: %v", err)
		return nil, appErrors.New(appErrors.CodePickerFailed, "Failed to take photo", err)
	}
	if asset == nil {
		return nil, nil
	}
	return a.describe(asset, "photo"), nil
}

// Pick selects an existing image at path. An empty path cancels.
func (a *Acquirer) Pick(ctx context.Context, path string) (*domain.Image, error) {
	granted, err := a.perms.RequestMediaLibrary(ctx)
	if err != nil || !granted {
		return nil, appErrors.New(appErrors.CodePermissionDenied, "Media library permission denied", err)
	}
	asset, err := a.gallery.Pick(ctx, a.pickOptions(path))
	if err != nil {
		debug.Logf("media: gallery pick failed: %v", err)
		return nil, appErrors.New(appErrors.CodePickerFailed, "Failed to pick image", err)
	}
	if asset == nil {
		return nil, nil
	}
	return a.describe(asset, "image"), nil
}

// Validate checks that the image exists and is within the size limit. An image
// exactly at the limit passes.
func (a *Acquirer) Validate(img domain.Image) error {
	info, err := a.fs.Stat(img.URI)
	if errors.Is(err, fs.ErrNotExist) {
		return appErrors.New(appErrors.CodeImageMissing, "Image file does not exist", err)
	}
	if err != nil {
		return appErrors.New(appErrors.CodeImageMissing, "Unable to read image file", err)
	}
	size := img.Size
	if size <= 0 {
		size = info.Size()
	}
	if size > a.cfg.MaxSize {
		msg := fmt.Sprintf("Image size (%dMB) exceeds maximum allowed size (%sMB)",
			int64(math.Round(float64(size)/1024/1024)),
			strconv.FormatFloat(float64(a.cfg.MaxSize)/1024/1024, 'f', -1, 64))
		return appErrors.New(appErrors.CodeImageTooLarge, msg, nil)
	}
	return nil
}

// Compress returns img unchanged; images are uploaded as captured.
func (a *Acquirer) Compress(img domain.Image) domain.Image {
	return img
}

// IsAllowedType reports whether mime is one of image.allowed-types.
func (a *Acquirer) IsAllowedType(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, allowed := range a.cfg.AllowedTypes {
		if strings.EqualFold(allowed, mime) {
			return true
		}
	}
	return false
}

func (a *Acquirer) pickOptions(path string) PickOptions {
	return PickOptions{
		ImagesOnly:    true,
		AllowsEditing: true,
		AspectX:       4,
		AspectY:       3,
		Quality:       a.cfg.Quality,
		Path:          path,
	}
}

func (a *Acquirer) describe(asset *Asset, prefix string) *domain.Image {
	return &domain.Image{
		URI:  asset.URI,
		Type: a.detectType(asset),
		Name: fmt.Sprintf("%s_%d.jpg", prefix, a.now().UnixMilli()),
		Size: asset.Size,
	}
}

func (a *Acquirer) detectType(asset *Asset) string {
	if asset.Type != "" {
		return asset.Type
	}
	f, err := a.fs.Open(asset.URI)
	if err != nil {
		return domain.DefaultImageType
	}
	defer func() { _ = f.Close() }()

	mt, err := mimetype.DetectReader(f)
	if err != nil || !strings.HasPrefix(mt.String(), "image/") {
		return domain.DefaultImageType
	}
	return mt.String()
}
