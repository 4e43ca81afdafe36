package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyEnvironment = "environment"

	KeyAPIBaseURL     = "api.base-url"
	KeyAPIDevBaseURL  = "api.dev-base-url"
	KeyAPIProdBaseURL = "api.prod-base-url"
	KeyAPITimeout     = "api.timeout"

	KeyPlacesEndpoint  = "places.endpoint"
	KeyPlacesCountry   = "places.country"
	KeyPlacesLimit     = "places.limit"
	KeyPlacesUserAgent = "places.user-agent"

	KeyLocationTimeout      = "location.timeout"
	KeyLocationMaximumAge   = "location.maximum-age"
	KeyLocationHighAccuracy = "location.high-accuracy"
	KeyLocationLatitude     = "location.latitude"
	KeyLocationLongitude    = "location.longitude"

	KeyLocationPermission = "device.location-permission"
	KeyCameraPermission   = "device.camera-permission"
	KeyMediaPermission    = "device.media-permission"

	KeyImageMaxSize        = "image.max-size"
	KeyImageQuality        = "image.quality"
	KeyImageAllowedTypes   = "image.allowed-types"
	KeyImageCaptureCommand = "image.capture-command"

	KeyFeedbackBell   = "feedback.bell"
	KeyTheme          = "theme"
	KeyOutputFormat   = "output.format"
	KeyDiagnosticsDB  = "diagnostics.path"
	KeySentryDSN      = "sentry.dsn"
	KeyRefreshSeconds = "auto-refresh-seconds"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	DefaultDevBaseURL  = "http://10.0.2.2:5000/api"
	DefaultProdBaseURL = "https://civic-eye-backend.onrender.com/api"
	DefaultAPITimeout  = 10 * time.Second

	// DefaultImageMaxSize is 5 MiB.
	DefaultImageMaxSize = 5 * 1024 * 1024

	envPrefix = "CE"
	dirName   = ".civiceye"
)

// Permission values accepted by the device.* keys.
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// API holds REST client settings.
type API struct {
	BaseURL string
	Timeout time.Duration
}

// Places holds place-search provider settings.
type Places struct {
	Endpoint  string
	Country   string
	Limit     int
	UserAgent string
}

// Location holds geolocation settings.
type Location struct {
	Timeout      time.Duration
	MaximumAge   time.Duration
	HighAccuracy bool
	Latitude     float64
	Longitude    float64
}

// Device holds the simulated permission answers of the host.
type Device struct {
	LocationPermission bool
	CameraPermission   bool
	MediaPermission    bool
}

// Image holds acquisition and validation settings.
type Image struct {
	MaxSize        int64
	Quality        float64
	AllowedTypes   []string
	CaptureCommand string
}

// Config is the fully resolved configuration, built once at startup and passed
// explicitly into the services that need it.
type Config struct {
	Environment    string
	API            API
	Places         Places
	Location       Location
	Device         Device
	Image          Image
	FeedbackBell   bool
	Theme          string
	OutputFormat   string
	DiagnosticsDB  string
	SentryDSN      string
	RefreshSeconds int

	// Sources lists the config files that were merged, in precedence order.
	Sources []string
}

// IsDevelopment reports whether the development environment is selected.
func (c *Config) IsDevelopment() bool {
	return c.Environment != EnvironmentProduction
}

type loadSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
	envFile           string
	overrides         map[string]any
}

// Option configures Load behaviour. Useful for tests to override paths.
type Option func(*loadSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *loadSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *loadSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *loadSettings) {
		cfg.userConfigPath = path
	}
}

// WithEnvFile overrides the .env file loaded before environment lookup.
func WithEnvFile(path string) Option {
	return func(cfg *loadSettings) {
		cfg.envFile = path
	}
}

// WithOverrides injects values typically coming from CLI flags.
func WithOverrides(overrides map[string]any) Option {
	return func(cfg *loadSettings) {
		if cfg.overrides == nil {
			cfg.overrides = map[string]any{}
		}
		for k, v := range overrides {
			cfg.overrides[k] = v
		}
	}
}

// Load resolves configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Load(opts ...Option) (*Config, error) {
	settings := loadSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	envFile := strings.TrimSpace(settings.envFile)
	if envFile == "" {
		envFile = filepath.Join(workingDir, ".env")
	}
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return nil, err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return nil, err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var sources []string
	merged, err := mergeConfigFile(v, userConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load user config: %w", err)
	}
	if merged {
		sources = append(sources, userConfigPath)
	}
	merged, err = mergeConfigFile(v, projectConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load project config: %w", err)
	}
	if merged {
		sources = append(sources, projectConfigPath)
	}
	for k, val := range settings.overrides {
		v.Set(k, val)
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := strings.ToLower(strings.TrimSpace(v.GetString(KeyEnvironment)))
	switch env {
	case "", "dev":
		env = EnvironmentDevelopment
	case "prod":
		env = EnvironmentProduction
	case EnvironmentDevelopment, EnvironmentProduction:
	default:
		return nil, fmt.Errorf("unknown environment %q (want %s or %s)", env, EnvironmentDevelopment, EnvironmentProduction)
	}

	baseURL := strings.TrimSpace(v.GetString(KeyAPIBaseURL))
	if baseURL == "" {
		if env == EnvironmentProduction {
			baseURL = v.GetString(KeyAPIProdBaseURL)
		} else {
			baseURL = v.GetString(KeyAPIDevBaseURL)
		}
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is empty")
	}

	timeout := v.GetDuration(KeyAPITimeout)
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}

	quality := v.GetFloat64(KeyImageQuality)
	if quality <= 0 || quality > 1 {
		return nil, fmt.Errorf("%s must be within (0, 1], got %v", KeyImageQuality, quality)
	}
	maxSize := v.GetInt64(KeyImageMaxSize)
	if maxSize <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", KeyImageMaxSize, maxSize)
	}

	limit := v.GetInt(KeyPlacesLimit)
	if limit <= 0 {
		limit = 5
	}

	refresh := v.GetInt(KeyRefreshSeconds)
	if refresh < 0 {
		refresh = 0
	}

	return &Config{
		Environment: env,
		API: API{
			BaseURL: baseURL,
			Timeout: timeout,
		},
		Places: Places{
			Endpoint:  strings.TrimRight(v.GetString(KeyPlacesEndpoint), "/"),
			Country:   v.GetString(KeyPlacesCountry),
			Limit:     limit,
			UserAgent: v.GetString(KeyPlacesUserAgent),
		},
		Location: Location{
			Timeout:      v.GetDuration(KeyLocationTimeout),
			MaximumAge:   v.GetDuration(KeyLocationMaximumAge),
			HighAccuracy: v.GetBool(KeyLocationHighAccuracy),
			Latitude:     v.GetFloat64(KeyLocationLatitude),
			Longitude:    v.GetFloat64(KeyLocationLongitude),
		},
		Device: Device{
			LocationPermission: isGranted(v.GetString(KeyLocationPermission)),
			CameraPermission:   isGranted(v.GetString(KeyCameraPermission)),
			MediaPermission:    isGranted(v.GetString(KeyMediaPermission)),
		},
		Image: Image{
			MaxSize:        maxSize,
			Quality:        quality,
			AllowedTypes:   v.GetStringSlice(KeyImageAllowedTypes),
			CaptureCommand: strings.TrimSpace(v.GetString(KeyImageCaptureCommand)),
		},
		FeedbackBell:   v.GetBool(KeyFeedbackBell),
		Theme:          v.GetString(KeyTheme),
		OutputFormat:   v.GetString(KeyOutputFormat),
		DiagnosticsDB:  strings.TrimSpace(v.GetString(KeyDiagnosticsDB)),
		SentryDSN:      strings.TrimSpace(v.GetString(KeySentryDSN)),
		RefreshSeconds: refresh,
	}, nil
}

func isGranted(value string) bool {
	return !strings.EqualFold(strings.TrimSpace(value), PermissionDenied)
}

func loadEnvFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil
	}
	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// Dir returns the per-user directory holding config, logs and the diagnostics journal.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func defaultUserConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, dirName, "config.yaml")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnvironment, EnvironmentDevelopment)
	v.SetDefault(KeyAPIBaseURL, "")
	v.SetDefault(KeyAPIDevBaseURL, DefaultDevBaseURL)
	v.SetDefault(KeyAPIProdBaseURL, DefaultProdBaseURL)
	v.SetDefault(KeyAPITimeout, DefaultAPITimeout)

	v.SetDefault(KeyPlacesEndpoint, "https://nominatim.openstreetmap.org")
	v.SetDefault(KeyPlacesCountry, "IN")
	v.SetDefault(KeyPlacesLimit, 5)
	v.SetDefault(KeyPlacesUserAgent, "CivicEye-App/1.0")

	v.SetDefault(KeyLocationTimeout, 15*time.Second)
	v.SetDefault(KeyLocationMaximumAge, 60*time.Second)
	v.SetDefault(KeyLocationHighAccuracy, true)
	v.SetDefault(KeyLocationLatitude, 12.9716)
	v.SetDefault(KeyLocationLongitude, 77.5946)

	v.SetDefault(KeyLocationPermission, PermissionGranted)
	v.SetDefault(KeyCameraPermission, PermissionGranted)
	v.SetDefault(KeyMediaPermission, PermissionGranted)

	v.SetDefault(KeyImageMaxSize, DefaultImageMaxSize)
	v.SetDefault(KeyImageQuality, 0.8)
	v.SetDefault(KeyImageAllowedTypes, []string{"image/jpeg", "image/png", "image/jpg"})
	v.SetDefault(KeyImageCaptureCommand, "")

	v.SetDefault(KeyFeedbackBell, false)
	v.SetDefault(KeyTheme, "civic")
	v.SetDefault(KeyOutputFormat, "rich")
	v.SetDefault(KeyDiagnosticsDB, "")
	v.SetDefault(KeySentryDSN, "")
	v.SetDefault(KeyRefreshSeconds, 0)
}

// SaveTheme persists the theme name to the appropriate config file.
// If a project config (.civiceye/config.yaml) exists above workingDir, it updates
// that file. Otherwise, it updates userConfigPath (or ~/.civiceye/config.yaml when
// empty). The user config directory is auto-created if needed, but project config
// directories are never auto-created.
func SaveTheme(workingDir, userConfigPath, themeName string) error {
	targetPath, err := findWritableConfigPath(workingDir, userConfigPath)
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(targetPath)

	// Missing file is fine; other settings are preserved when it exists.
	_ = v.ReadInConfig()

	v.Set(KeyTheme, themeName)

	dir := filepath.Dir(targetPath)
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func findWritableConfigPath(workingDir, userConfigPath string) (string, error) {
	if strings.TrimSpace(workingDir) == "" {
		if wd, err := os.Getwd(); err == nil {
			workingDir = wd
		}
	}
	if projectPath, err := findProjectConfig(workingDir); err == nil && projectPath != "" {
		return projectPath, nil
	}
	if strings.TrimSpace(userConfigPath) != "" {
		return userConfigPath, nil
	}
	return defaultUserConfigPath()
}
