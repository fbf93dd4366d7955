package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-shipcard/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxTokenLength      = 255
	MaxURLLength        = 2048
	MaxUserAgentLength  = 200
	MaxStyleNameLength  = 64
	MaxDateFormatLength = 100
	MaxPathLength       = 4096
	MaxAddressLength    = 255
)

// Log levels and formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Page themes accepted by render.theme.
var themes = []any{"default", "ocean", "forest", "sunset", "lavender", "midnight", "ruby"}

// Config holds all configuration for the shipcard binary.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// GitHubConfig configures the GitHub client.
type GitHubConfig struct {
	Token           string        `yaml:"token"` // falls back to $GITHUB_TOKEN
	APIBaseURL      string        `yaml:"apiBaseURL"`
	RawBaseURL      string        `yaml:"rawBaseURL"`
	UserAgent       string        `yaml:"userAgent"`
	Timeout         time.Duration `yaml:"timeout"`
	BranchCacheTTL  time.Duration `yaml:"branchCacheTTL"`
	BranchCacheSize int           `yaml:"branchCacheSize"`
}

// RenderConfig configures Markdown and page rendering.
type RenderConfig struct {
	Highlight      bool   `yaml:"highlight"`
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
	Theme          string `yaml:"theme"`          // default page theme
	DateFormat     string `yaml:"dateFormat"`     // token format or preset
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
	Style    string `yaml:"style"`
	Template string `yaml:"template"`
}

// SnapshotConfig configures headless Chrome captures.
type SnapshotConfig struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Timeout    time.Duration `yaml:"timeout"`
	BrowserBin string        `yaml:"browserBin"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error, none
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIBaseURL:      "https://api.github.com",
			RawBaseURL:      "https://raw.githubusercontent.com",
			UserAgent:       "go-shipcard",
			Timeout:         10 * time.Second,
			BranchCacheTTL:  time.Hour,
			BranchCacheSize: 1024,
		},
		Render: RenderConfig{
			Highlight:      true,
			HighlightStyle: "github",
			Theme:          "default",
			DateFormat:     "long",
		},
		Snapshot: SnapshotConfig{
			Width:   1200,
			Height:  630,
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// Validate checks field lengths, ranges and enums.
// Called by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"github.token", c.GitHub.Token, MaxTokenLength},
		{"github.apiBaseURL", c.GitHub.APIBaseURL, MaxURLLength},
		{"github.rawBaseURL", c.GitHub.RawBaseURL, MaxURLLength},
		{"github.userAgent", c.GitHub.UserAgent, MaxUserAgentLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxStyleNameLength},
		{"render.dateFormat", c.Render.DateFormat, MaxDateFormatLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"snapshot.browserBin", c.Snapshot.BrowserBin, MaxPathLength},
		{"server.address", c.Server.Address, MaxAddressLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	sections := []struct {
		name string
		err  error
	}{
		{"github", validation.ValidateStruct(&c.GitHub,
			validation.Field(&c.GitHub.APIBaseURL, validation.Required, validation.By(httpURL)),
			validation.Field(&c.GitHub.RawBaseURL, validation.Required, validation.By(httpURL)),
			validation.Field(&c.GitHub.Timeout, validation.Min(time.Duration(0))),
			validation.Field(&c.GitHub.BranchCacheTTL, validation.Min(time.Duration(0))),
			validation.Field(&c.GitHub.BranchCacheSize, validation.Min(0)),
		)},
		{"render", validation.ValidateStruct(&c.Render,
			validation.Field(&c.Render.Theme, validation.In(themes...)),
		)},
		{"snapshot", validation.ValidateStruct(&c.Snapshot,
			validation.Field(&c.Snapshot.Width, validation.Min(0), validation.Max(4096)),
			validation.Field(&c.Snapshot.Height, validation.Min(0), validation.Max(4096)),
			validation.Field(&c.Snapshot.Timeout, validation.Min(time.Duration(0))),
		)},
		{"server", validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.ReadTimeout, validation.Min(time.Duration(0))),
			validation.Field(&c.Server.WriteTimeout, validation.Min(time.Duration(0))),
		)},
		{"log", validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "warning", "error", "none")),
			validation.Field(&c.Log.Format, validation.In(LogFormatText, LogFormatJSON)),
		)},
	}
	for _, s := range sections {
		if s.err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.name, s.err)
		}
	}
	return nil
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s != "" && !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "http://") {
		return errors.New("must be an http or https URL")
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// ApplyEnv fills values left empty by the file from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.GitHub.Token == "" {
		c.GitHub.Token = getenv("GITHUB_TOKEN")
	}
	if v := getenv("SHIPCARD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("SHIPCARD_ADDR"); v != "" {
		c.Server.Address = v
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched for in standard locations.
// ${VAR} references are expanded from the environment before parsing.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	expanded := os.ExpandEnv(string(data))
	if err := yamlutil.UnmarshalStrict([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for NAME.yaml then NAME.yml in the current
// directory, then in the user config directory under go-shipcard/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-shipcard", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
