// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package webcfg

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
)

// DefaultMaxDepth is the nesting limit used when WithMaxDepth is not given.
const DefaultMaxDepth = 512

type config struct {
	fs       afero.Fs
	logger   *slog.Logger
	maxDepth int
}

type Option func(c *config) error

// WithFS sets the file system that Load reads from.
func WithFS(fs afero.Fs) Option {
	return func(c *config) error {
		if fs == nil {
			return fmt.Errorf("webcfg: nil file system")
		}
		c.fs = fs
		return nil
	}
}

// WithLogger sets the logger used for debug tracing. A nil logger is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMaxDepth limits how deeply elements may nest. Zero removes the limit.
func WithMaxDepth(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("webcfg: max depth must not be negative: %d", n)
		}
		c.maxDepth = n
		return nil
	}
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{
		fs:       afero.NewOsFs(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
