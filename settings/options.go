// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package settings

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mdhender/webcfg"
	"github.com/spf13/afero"
)

type config struct {
	webRoot      string
	appName      string
	lookupEnv    func(key string) (string, bool)
	fs           afero.Fs
	logger       *slog.Logger
	parseOptions []webcfg.Option
	data         []byte // config file contents, when supplied by the caller
	hasData      bool
}

type Option func(c *config) error

// WithWebRoot sets WebRoot. The default is <contentRoot>/wwwroot.
func WithWebRoot(path string) Option {
	return func(c *config) error {
		c.webRoot = path
		return nil
	}
}

// WithAppName sets AppName. The default is the last segment of contentRoot.
func WithAppName(name string) Option {
	return func(c *config) error {
		c.appName = name
		return nil
	}
}

// WithLookupEnv replaces os.LookupEnv as the source of environment values.
func WithLookupEnv(fn func(key string) (string, bool)) Option {
	return func(c *config) error {
		if fn == nil {
			return fmt.Errorf("settings: nil environment lookup")
		}
		c.lookupEnv = fn
		return nil
	}
}

// WithoutEnvironment stops Get from falling back to environment variables.
func WithoutEnvironment() Option {
	return WithLookupEnv(func(string) (string, bool) {
		return "", false
	})
}

// WithFS sets the file system the config file is read from.
func WithFS(fs afero.Fs) Option {
	return func(c *config) error {
		if fs == nil {
			return fmt.Errorf("settings: nil file system")
		}
		c.fs = fs
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithParseOptions passes options through to the markup parser.
func WithParseOptions(opts ...webcfg.Option) Option {
	return func(c *config) error {
		c.parseOptions = append(c.parseOptions, opts...)
		return nil
	}
}

// WithConfigData makes Setup parse data as the contents of the config file
// instead of reading the file.
func WithConfigData(data []byte) Option {
	return func(c *config) error {
		c.data, c.hasData = data, true
		return nil
	}
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{
		lookupEnv: os.LookupEnv,
		fs:        afero.NewOsFs(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
