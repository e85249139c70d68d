package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrContentRootRequired = errors.New("docnav config: content root is required")
var ErrSectionsRequired = errors.New("docnav config: at least one section is required")
var ErrSectionInvalid = errors.New("docnav config: section is invalid")
var ErrIndexNameRequired = errors.New("docnav config: index name is required")
var ErrExtensionInvalid = errors.New("docnav config: document extension must start with a dot")
var ErrStagingDirRequired = errors.New("docnav config: relocation staging directory is required")
var ErrOutputPathRequired = errors.New("docnav config: output path is required")
var ErrOutputFormatInvalid = errors.New("docnav config: output format is invalid")
var ErrWatchDebounceInvalid = errors.New("docnav config: watch debounce must be zero or positive")

// ErrMetricsTextfileRequired ensures enabled metrics have somewhere to go.
var ErrMetricsTextfileRequired = errors.New("docnav config: metrics textfile path is required when metrics are enabled")
var ErrLoggingProviderRequired = errors.New("docnav config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("docnav config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docnav config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docnav config: logging format is invalid")

// Config aggregates every tunable of the navigation tools. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	Content    ContentConfig    `toml:"content"`
	Navigation NavigationConfig `toml:"navigation"`
	Relocation RelocationConfig `toml:"relocation"`
	Output     OutputConfig     `toml:"output"`
	Watch      WatchConfig      `toml:"watch"`
	Hook       HookConfig       `toml:"hook"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ContentConfig locates the documentation tree.
type ContentConfig struct {
	Root      string   `toml:"root"`
	Sections  []string `toml:"sections"`
	IndexName string   `toml:"index_name"`
	Extension string   `toml:"extension"`
}

// NavigationConfig tunes sidebar and top-level nav generation.
type NavigationConfig struct {
	Locale           string   `toml:"locale"`
	DirectoriesFirst bool     `toml:"directories_first"`
	HomeText         string   `toml:"home_text"`
	ExcludeNav       []string `toml:"exclude_nav"`
}

// RelocationConfig drives the staging-to-tree move.
type RelocationConfig struct {
	StagingDir         string `toml:"staging_dir"`
	DestinationDir     string `toml:"destination_dir"`
	AssetsDir          string `toml:"assets_dir"`
	AssetURLPrefix     string `toml:"asset_url_prefix"`
	InjectTitleHeading bool   `toml:"inject_title_heading"`
}

// OutputConfig selects where and how the navigation document is written.
type OutputConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// WatchConfig tunes the development watcher.
type WatchConfig struct {
	Debounce time.Duration `toml:"debounce"`
}

// HookConfig tunes the post-merge hook.
type HookConfig struct {
	// WatchPrefix limits rebuilds to merges touching files below it.
	WatchPrefix string `toml:"watch_prefix"`
	OldRev      string `toml:"old_rev"`
	NewRev      string `toml:"new_rev"`
}

// MetricsConfig toggles the Prometheus textfile export.
type MetricsConfig struct {
	Enabled      bool   `toml:"enabled"`
	TextfilePath string `toml:"textfile_path"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider"`
	Level     string   `toml:"level"`
	Format    string   `toml:"format"`
	AddSource bool     `toml:"add_source"`
	Focus     []string `toml:"focus"`
}

// DefaultConfig returns the layout of a stock documentation site.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Root:      "docs",
			Sections:  []string{"guide", "release"},
			IndexName: "index",
			Extension: ".md",
		},
		Navigation: NavigationConfig{
			Locale:     "en",
			HomeText:   "Home",
			ExcludeNav: []string{"public"},
		},
		Relocation: RelocationConfig{
			StagingDir:     "docs/guide",
			DestinationDir: "docs/guide",
			AssetsDir:      "docs/public/images",
			AssetURLPrefix: "/images",
		},
		Output: OutputConfig{
			Path:   "docs/.vitepress/sidebar.json",
			Format: "json",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Hook: HookConfig{
			WatchPrefix: "docs/guide/",
			OldRev:      "ORIG_HEAD",
			NewRev:      "HEAD",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Root) == "" {
		return ErrContentRootRequired
	}
	if len(cfg.Content.Sections) == 0 {
		return ErrSectionsRequired
	}
	for _, section := range cfg.Content.Sections {
		trimmed := strings.Trim(strings.TrimSpace(section), "/")
		if trimmed == "" || strings.Contains(trimmed, "..") {
			return fmt.Errorf("%w: %q", ErrSectionInvalid, section)
		}
	}
	if strings.TrimSpace(cfg.Content.IndexName) == "" {
		return ErrIndexNameRequired
	}
	if ext := strings.TrimSpace(cfg.Content.Extension); ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: %s", ErrExtensionInvalid, ext)
	}
	if strings.TrimSpace(cfg.Relocation.StagingDir) == "" {
		return ErrStagingDirRequired
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		return ErrOutputPathRequired
	}
	if format := strings.TrimSpace(cfg.Output.Format); format != "" && !isSupportedOutputFormat(format) {
		return fmt.Errorf("%w: %s", ErrOutputFormatInvalid, format)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("%w: %s", ErrWatchDebounceInvalid, cfg.Watch.Debounce)
	}
	if cfg.Metrics.Enabled && strings.TrimSpace(cfg.Metrics.TextfilePath) == "" {
		return ErrMetricsTextfileRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedOutputFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "yaml", "yml":
		return true
	default:
		return false
	}
}
