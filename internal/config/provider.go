// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Loaded is a loaded configuration together with its source file.
	Loaded struct {
		Config *Config
		// Path is the file that was read, or "" when only defaults and
		// environment variables applied.
		Path string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Loaded, error)
	}

	fileProvider struct{}

	// staticProvider returns a fixed configuration; used by tests and
	// embedders that configure uribo programmatically.
	staticProvider struct {
		cfg *Config
	}
)

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// NewStaticProvider creates a provider that always returns cfg.
func NewStaticProvider(cfg *Config) Provider {
	return &staticProvider{cfg: cfg}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &Loaded{Config: cfg, Path: path}, nil
}

// Load returns the static configuration.
func (p *staticProvider) Load(context.Context, LoadOptions) (*Loaded, error) {
	cfg := p.cfg
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Loaded{Config: cfg}, nil
}
