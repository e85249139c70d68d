package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKeys reports TOML keys that do not map onto Config.
var ErrUnknownKeys = errors.New("docnav config: unknown keys")

// Environment overrides applied after the file.
const (
	EnvContentRoot = "DOCNAV_CONTENT_ROOT"
	EnvLogLevel    = "DOCNAV_LOG_LEVEL"
	EnvOutputPath  = "DOCNAV_OUTPUT_PATH"
)

// Load reads config: defaults -> TOML file -> env vars (env wins). An empty
// path or a missing file yields the defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("docnav config: read %s: %w", path, err)
		default:
			if err := Decode(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("docnav config: %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg. Keys that match no field are rejected.
func Decode(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvContentRoot)); v != "" {
		cfg.Content.Root = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputPath)); v != "" {
		cfg.Output.Path = v
	}
}
