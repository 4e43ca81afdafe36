package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	cfg, err := Load(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Environment != EnvironmentDevelopment {
		t.Fatalf("expected development environment, got %q", cfg.Environment)
	}
	if cfg.API.BaseURL != DefaultDevBaseURL {
		t.Fatalf("expected dev base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Image.MaxSize != DefaultImageMaxSize {
		t.Fatalf("expected 5MiB image limit, got %d", cfg.Image.MaxSize)
	}
	if cfg.Image.Quality != 0.8 {
		t.Fatalf("expected quality 0.8, got %v", cfg.Image.Quality)
	}
	if cfg.Location.Timeout != 15*time.Second || cfg.Location.MaximumAge != time.Minute {
		t.Fatalf("unexpected location bounds: %+v", cfg.Location)
	}
	if cfg.Places.Country != "IN" || cfg.Places.Limit != 5 {
		t.Fatalf("unexpected places defaults: %+v", cfg.Places)
	}
	if !cfg.Device.CameraPermission || !cfg.Device.LocationPermission || !cfg.Device.MediaPermission {
		t.Fatalf("expected permissions granted by default: %+v", cfg.Device)
	}
	if len(cfg.Sources) != 0 {
		t.Fatalf("expected no merged sources, got %v", cfg.Sources)
	}
}

func TestProductionSelectsProdBaseURL(t *testing.T) {
	tmp := t.TempDir()
	cfg, err := Load(
		WithWorkingDir(tmp),
		WithUserConfig(filepath.Join(tmp, "user.yaml")),
		WithOverrides(map[string]any{KeyEnvironment: "prod"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production")
	}
	if cfg.API.BaseURL != DefaultProdBaseURL {
		t.Fatalf("expected prod base url, got %q", cfg.API.BaseURL)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	projectCfg := filepath.Join(projectDir, ".civiceye", "config.yaml")
	writeFile(t, projectCfg, `
api:
  base-url: http://project.example/api/
image:
  max-size: 1024
`)
	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
api:
  base-url: http://user.example/api
theme: dracula
`)

	nested := filepath.Join(projectDir, "a", "b")
	mustMkdir(t, nested)
	cfg, err := Load(WithWorkingDir(nested), WithUserConfig(userCfg))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.BaseURL != "http://project.example/api" {
		t.Fatalf("expected project url with trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.Image.MaxSize != 1024 {
		t.Fatalf("expected project image limit, got %d", cfg.Image.MaxSize)
	}
	if cfg.Theme != "dracula" {
		t.Fatalf("expected user theme to survive merge, got %q", cfg.Theme)
	}
	if len(cfg.Sources) != 2 || cfg.Sources[1] != projectCfg {
		t.Fatalf("unexpected sources %v", cfg.Sources)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	tmp := t.TempDir()
	projectCfg := filepath.Join(tmp, ".civiceye", "config.yaml")
	writeFile(t, projectCfg, `
api:
  timeout: 3s
device:
  camera-permission: granted
`)
	t.Setenv("CE_API_TIMEOUT", "7s")
	t.Setenv("CE_DEVICE_CAMERA_PERMISSION", "denied")

	cfg, err := Load(WithWorkingDir(tmp), WithProjectConfig(projectCfg), WithUserConfig(filepath.Join(tmp, "none.yaml")))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.Timeout != 7*time.Second {
		t.Fatalf("expected env timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Device.CameraPermission {
		t.Fatalf("expected env to deny camera permission")
	}

	cfg, err = Load(
		WithWorkingDir(tmp),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "none.yaml")),
		WithOverrides(map[string]any{KeyAPITimeout: "1s"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.Timeout != time.Second {
		t.Fatalf("expected override timeout, got %v", cfg.API.Timeout)
	}
}

func TestEnvFileIsLoaded(t *testing.T) {
	tmp := t.TempDir()
	envFile := filepath.Join(tmp, ".env")
	writeFile(t, envFile, "CE_SENTRY_DSN=https://key@sentry.example/1\n")
	t.Cleanup(func() { _ = os.Unsetenv("CE_SENTRY_DSN") })

	cfg, err := Load(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SentryDSN != "https://key@sentry.example/1" {
		t.Fatalf("expected DSN from .env, got %q", cfg.SentryDSN)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmp := t.TempDir()
	tests := []struct {
		name      string
		overrides map[string]any
		want      string
	}{
		{name: "environment", overrides: map[string]any{KeyEnvironment: "staging"}, want: "unknown environment"},
		{name: "quality", overrides: map[string]any{KeyImageQuality: 1.5}, want: KeyImageQuality},
		{name: "max size", overrides: map[string]any{KeyImageMaxSize: 0}, want: KeyImageMaxSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")), WithOverrides(tt.overrides))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveThemeWritesUserConfig(t *testing.T) {
	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "home", ".civiceye", "config.yaml")
	writeFile(t, userCfg, "api:\n  timeout: 4s\n")

	if err := SaveTheme(tmp, userCfg, "nord"); err != nil {
		t.Fatalf("SaveTheme returned error: %v", err)
	}
	cfg, err := Load(WithWorkingDir(tmp), WithUserConfig(userCfg))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != "nord" {
		t.Fatalf("expected saved theme, got %q", cfg.Theme)
	}
	if cfg.API.Timeout != 4*time.Second {
		t.Fatalf("expected existing settings preserved, got %v", cfg.API.Timeout)
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
