package docnav

import "github.com/goliatone/go-docnav/internal/runtimeconfig"

var (
	ErrContentRootRequired     = runtimeconfig.ErrContentRootRequired
	ErrSectionsRequired        = runtimeconfig.ErrSectionsRequired
	ErrSectionInvalid          = runtimeconfig.ErrSectionInvalid
	ErrIndexNameRequired       = runtimeconfig.ErrIndexNameRequired
	ErrExtensionInvalid        = runtimeconfig.ErrExtensionInvalid
	ErrStagingDirRequired      = runtimeconfig.ErrStagingDirRequired
	ErrOutputPathRequired      = runtimeconfig.ErrOutputPathRequired
	ErrOutputFormatInvalid     = runtimeconfig.ErrOutputFormatInvalid
	ErrWatchDebounceInvalid    = runtimeconfig.ErrWatchDebounceInvalid
	ErrMetricsTextfileRequired = runtimeconfig.ErrMetricsTextfileRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrUnknownConfigKeys       = runtimeconfig.ErrUnknownKeys
)

type (
	Config           = runtimeconfig.Config
	ContentConfig    = runtimeconfig.ContentConfig
	NavigationConfig = runtimeconfig.NavigationConfig
	RelocationConfig = runtimeconfig.RelocationConfig
	OutputConfig     = runtimeconfig.OutputConfig
	WatchConfig      = runtimeconfig.WatchConfig
	HookConfig       = runtimeconfig.HookConfig
	MetricsConfig    = runtimeconfig.MetricsConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads an optional TOML file over the defaults. An empty or
// missing path yields the defaults with environment overrides applied.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
