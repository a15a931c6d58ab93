package model

import "time"

// Config holds the complete clubfacts configuration.
// Populated from defaults, then ~/.clubfacts/config.yaml, then
// CLUBFACTS_* environment variables, then CLI flags.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// HTTPConfig configures the document fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig configures the fetched-page cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// SourceConfig configures where articles are fetched from and how
// politely. Delay is the minimum gap between consecutive page fetches;
// subjects are processed strictly sequentially.
type SourceConfig struct {
	BaseURL       string        `yaml:"base_url" mapstructure:"base_url"`
	Delay         time.Duration `yaml:"delay" mapstructure:"delay"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ResolverConfig configures club-name resolution.
type ResolverConfig struct {
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// StoreConfig configures the SQLite sink.
type StoreConfig struct {
	DBPath string `yaml:"db_path" mapstructure:"db_path"`
}

// OutputConfig configures progress reporting.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "clubfacts/0.1 (+https://github.com/pvolkov/clubfacts)",
			MaxBodyBytes: 4_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "~/.clubfacts/cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Source: SourceConfig{
			BaseURL:       "https://en.wikipedia.org/wiki/",
			Delay:         2 * time.Second,
			RespectRobots: true,
		},
		Resolver: ResolverConfig{
			Threshold: 0.75,
		},
		Store: StoreConfig{
			DBPath: "~/.clubfacts/clubfacts.db",
		},
		Output: OutputConfig{},
	}
}
