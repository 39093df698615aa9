// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package settings builds an application's settings from environment
// variables and the appSettings and connectionStrings sections of a
// web.config style file.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/mdhender/webcfg"
)

// DefaultConfigFile is read when Setup is given an empty file name.
const DefaultConfigFile = "web.config"

// ErrIllegalConfiguration is returned when the config file's root element
// is not <configuration>.
var ErrIllegalConfiguration = errors.New("illegal configuration file")

// Settings is a dictionary of named string values. Lookups fall back to
// the environment, and values found there are remembered.
//
// Settings is safe for concurrent use.
type Settings struct {
	mu        sync.RWMutex
	values    map[string]string
	lookupEnv func(key string) (string, bool)
	logger    *slog.Logger
	rootName  string
}

// sections maps the config file sections that hold entries to the
// attributes that hold each entry's key and value.
var sections = map[string]struct{ key, value string }{
	"appsettings":       {key: "key", value: "value"},
	"connectionstrings": {key: "name", value: "connectionstring"},
}

// Setup loads settings for the application rooted at contentRoot.
//
// configFile is relative to contentRoot and defaults to web.config. A
// missing config file is not an error; an invalid one is. After the file
// is read, Env and LogFile are given defaults if the file did not set them.
func Setup(configFile, contentRoot string, opts ...Option) (*Settings, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	if contentRoot == "" {
		return nil, fmt.Errorf("settings: empty content root")
	}
	contentRoot = stripDelimiter(contentRoot)
	webRoot := cfg.webRoot
	if webRoot == "" {
		webRoot = contentRoot + string(filepath.Separator) + "wwwroot"
	}
	appName := cfg.appName
	if appName == "" {
		appName = lastPathSegment(contentRoot)
	}

	s := &Settings{
		values:    make(map[string]string),
		lookupEnv: cfg.lookupEnv,
		logger:    cfg.logger,
	}
	s.Set("NewLine", newLine())
	s.SetContentRoot(contentRoot)
	s.SetWebRoot(stripDelimiter(webRoot))
	s.SetAppName(appName)

	if err := s.readConfig(contentRoot+string(filepath.Separator)+configFile, cfg); err != nil {
		return nil, err
	}

	_ = s.Env()
	if _, ok := s.Get("LogFile"); !ok {
		s.Set("LogFile", s.AppName()+".log")
	}

	return s, nil
}

func (s *Settings) readConfig(path string, cfg *config) error {
	parseOptions := append([]webcfg.Option{webcfg.WithLogger(cfg.logger)}, cfg.parseOptions...)

	var root *webcfg.Node
	var err error
	if cfg.hasData {
		root, err = webcfg.ParseBytes(path, cfg.data, parseOptions...)
	} else {
		if _, err := cfg.fs.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.debug("settings: no config file", "path", path)
				return nil
			}
			return fmt.Errorf("settings: %w", err)
		}
		root, err = webcfg.LoadFS(cfg.fs, path, parseOptions...)
	}
	if err != nil {
		return err
	}
	if !root.Is("configuration") {
		return fmt.Errorf("%s: root element <%s>: %w", path, root.Name, ErrIllegalConfiguration)
	}
	s.rootName = root.Name

	entries := 0
	for _, node := range root.Children {
		section, ok := sections[strings.ToLower(node.Name)]
		if !ok {
			continue
		}
		entries += s.readEntries(node.Children, section.key, section.value)
	}
	s.debug("settings: loaded config file", "path", path, "entries", entries)

	return nil
}

// readEntries sets a value for each <add> node that has both the key and
// the value attribute, and returns the number of values set.
func (s *Settings) readEntries(nodes []*webcfg.Node, keyName, valueName string) int {
	n := 0
	for _, node := range nodes {
		if !node.Is("add") {
			continue
		}
		var key, value string
		var hasKey, hasValue bool
		for _, attr := range node.Attributes {
			switch strings.ToLower(attr.Name) {
			case keyName:
				key, hasKey = attr.Value, true
			case valueName:
				value, hasValue = attr.Value, true
			}
		}
		if hasKey && hasValue {
			s.Set(key, value)
			n++
		}
	}
	return n
}

// RootName is the name of the config file's root element as written, or
// an empty string if no config file was read.
func (s *Settings) RootName() string {
	return s.rootName
}

// Set adds or replaces a setting.
func (s *Settings) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns a setting. If it has not been set, the environment is
// searched and a value found there is saved as a setting.
func (s *Settings) Get(key string) (string, bool) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()
	if ok {
		return value, true
	}

	value, ok = s.lookupEnv(key)
	if !ok {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.values[key]; ok {
		// set by another goroutine since we looked
		return existing, true
	}
	s.values[key] = value
	return value, true
}

func (s *Settings) get(key string) string {
	value, _ := s.Get(key)
	return value
}

// ContentRoot is the folder containing the application.
func (s *Settings) ContentRoot() string { return s.get("ContentRoot") }

func (s *Settings) SetContentRoot(path string) { s.Set("ContentRoot", path) }

// WebRoot is the folder static files are served from.
func (s *Settings) WebRoot() string { return s.get("WebRoot") }

func (s *Settings) SetWebRoot(path string) { s.Set("WebRoot", path) }

func (s *Settings) AppName() string { return s.get("AppName") }

func (s *Settings) SetAppName(name string) { s.Set("AppName", name) }

// AppURL is the URL the application is served at. It has no default.
func (s *Settings) AppURL() string { return s.get("AppURL") }

func (s *Settings) SetAppURL(url string) { s.Set("AppURL", url) }

// Env is the name of the environment, such as Development or Production.
// If it is not set, ASPNETCORE_ENVIRONMENT is used, and if that is not
// set either, Development. The resolved name is saved.
func (s *Settings) Env() string {
	if env, ok := s.Get("Env"); ok {
		return env
	}
	env, ok := s.Get("ASPNETCORE_ENVIRONMENT")
	if !ok {
		env = "Development"
	}
	s.Set("Env", env)
	return env
}

func (s *Settings) SetEnv(env string) { s.Set("Env", env) }

// Debug is true only in the Development environment.
func (s *Settings) Debug() bool {
	return s.Env() == "Development"
}

// LogFile is the path of the log file in the Logs folder under ContentRoot.
func (s *Settings) LogFile() string {
	sep := string(filepath.Separator)
	return s.ContentRoot() + sep + "Logs" + sep + s.get("LogFile")
}

// Keys returns the names of all settings in sorted order.
func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of all settings.
func (s *Settings) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make(map[string]string, len(s.values))
	for key, value := range s.values {
		values[key] = value
	}
	return values
}

// DebugConfig returns every setting as "key: value" pairs separated by
// commas, in key order.
func (s *Settings) DebugConfig() string {
	values := s.Snapshot()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, key := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(values[key])
	}
	return sb.String()
}

func (s *Settings) debug(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, args...)
}

func newLine() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// stripDelimiter removes one trailing path separator.
func stripDelimiter(path string) string {
	return strings.TrimSuffix(path, string(filepath.Separator))
}

// lastPathSegment returns the final element of path, or an empty string
// when path has no named final element.
func lastPathSegment(path string) string {
	path = stripDelimiter(path)
	if path == "" || path == "." || path == ".." {
		return ""
	}
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}
