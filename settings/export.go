// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is an output format for Export.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("settings: unknown format %q", s)
}

// Export writes every setting to w. Keys are written in sorted order in
// every format.
func (s *Settings) Export(w io.Writer, format Format) error {
	values := s.Snapshot()
	switch format {
	case FormatText:
		for _, key := range s.Keys() {
			value, ok := values[key]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s = %q\n", key, value); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(values)
	}
	return fmt.Errorf("settings: unknown format %q", format)
}
