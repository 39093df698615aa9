// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import "time"

// Snapshot is the set of settings loaded from one config file at one time.
type Snapshot struct {
	ID       int64     `json:"id" db:"id"`
	UUID     string    `json:"uuid" db:"uuid"`
	Source   string    `json:"source" db:"source"`      // path of the config file
	SHA256   string    `json:"sha256" db:"sha256"`      // hex digest of the file contents
	RootName string    `json:"rootName" db:"root_name"` // name of the root element
	Env      string    `json:"env" db:"env"`            // resolved environment name
	LoadedAt time.Time `json:"loadedAt" db:"loaded_at"`
	Settings []Setting `json:"settings,omitempty"`
}

// Setting is one key/value pair in a Snapshot.
type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}

// Value returns the value of key in the snapshot.
func (s *Snapshot) Value(key string) (string, bool) {
	for _, setting := range s.Settings {
		if setting.Key == key {
			return setting.Value, true
		}
	}
	return "", false
}
