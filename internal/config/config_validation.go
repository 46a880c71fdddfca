package config

import "time"

// Defaults applied by applyDefaults when the merged configuration leaves a
// field unset. The sync heuristics mirror the constants the original sync
// loop used; they are tunable, not asserted optimal.
const (
	DefaultHTTPAddress        = "localhost:8080"
	DefaultBaseURL            = "https://www.geoguessr.com"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultMaxRetries         = 2
	DefaultRequestsPerSecond  = 2.0
	DefaultEmptyPageThreshold = 3
	DefaultPageRetryBudget    = 2
	DefaultPageCooldown       = 5 * time.Second
)

// applyDefaults fills unset fields of the merged configuration with the
// package defaults. Explicit values from any source always win.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Remote.BaseURL == "" {
		cfg.Remote.BaseURL = DefaultBaseURL
	}
	if cfg.Remote.RequestTimeout <= 0 {
		cfg.Remote.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Remote.MaxRetries <= 0 {
		cfg.Remote.MaxRetries = DefaultMaxRetries
	}
	if cfg.Remote.RequestsPerSecond <= 0 {
		cfg.Remote.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Sync.EmptyPageThreshold <= 0 {
		cfg.Sync.EmptyPageThreshold = DefaultEmptyPageThreshold
	}
	if cfg.Sync.PageRetryBudget <= 0 {
		cfg.Sync.PageRetryBudget = DefaultPageRetryBudget
	}
	if cfg.Sync.PageCooldown <= 0 {
		cfg.Sync.PageCooldown = DefaultPageCooldown
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Remote.Session == "" {
		return ErrInvalidRemoteConfigs
	}

	return nil
}
