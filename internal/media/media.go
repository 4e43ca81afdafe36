// Package media acquires, validates and prepares photos attached to reports.
package media

import (
	"context"

	"civiceye/internal/config"
)

// PickOptions are passed to a Picker for every acquisition.
type PickOptions struct {
	ImagesOnly    bool
	AllowsEditing bool
	AspectX       int
	AspectY       int
	Quality       float64
	// Path is the file chosen by the user, for pickers that browse existing files.
	Path string
}

// Asset is what a picker hands back. Type and Size may be empty.
type Asset struct {
	URI  string
	Type string
	Size int64
}

// Picker acquires one image. A nil asset with a nil error means the user cancelled.
type Picker interface {
	Pick(ctx context.Context, opts PickOptions) (*Asset, error)
}

// Permissions answers camera and media-library permission requests.
type Permissions interface {
	RequestCamera(ctx context.Context) (bool, error)
	RequestMediaLibrary(ctx context.Context) (bool, error)
}

// StaticPermissions answers from configuration.
type StaticPermissions struct {
	Camera       bool
	MediaLibrary bool
}

// PermissionsFromConfig reads device.camera-permission and device.media-permission.
func PermissionsFromConfig(device config.Device) StaticPermissions {
	return StaticPermissions{Camera: device.CameraPermission, MediaLibrary: device.MediaPermission}
}

func (p StaticPermissions) RequestCamera(context.Context) (bool, error) {
	return p.Camera, nil
}

func (p StaticPermissions) RequestMediaLibrary(context.Context) (bool, error) {
	return p.MediaLibrary, nil
}
