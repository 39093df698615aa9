// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mdhender/webcfg"
	"github.com/mdhender/webcfg/model"
	"github.com/mdhender/webcfg/settings"
	"github.com/spf13/afero"
)

// IngestService loads config files and stores their settings as snapshots.
type IngestService struct {
	store IngestStore
	fs    afero.Fs
	opts  []settings.Option
}

// IngestStore defines the store operations needed by IngestService.
type IngestStore interface {
	GetSnapshotBySource(ctx context.Context, source, sha256 string) (*model.Snapshot, error)
	InsertSnapshot(ctx context.Context, snap *model.Snapshot) (int64, error)
}

// NewIngestService creates a new IngestService.
// The settings options are applied to every file that is ingested.
func NewIngestService(store IngestStore, opts ...settings.Option) *IngestService {
	return &IngestService{
		store: store,
		fs:    afero.NewOsFs(),
		opts:  opts,
	}
}

// SetFS sets the filesystem for testing.
func (s *IngestService) SetFS(fs afero.Fs) {
	s.fs = fs
}

// IngestResult contains the result of an ingest operation.
type IngestResult struct {
	Path       string
	SnapshotID int64
	Duplicate  bool // true if the same content was already ingested (idempotent no-op)
	Settings   []model.Setting
}

// IngestFile reads the config file at path and stores its settings.
// The directory holding the file is used as the content root, and the
// bytes that were hashed are the bytes that are parsed.
// Returns IngestResult with Duplicate=true if the same content was already
// stored for the same path.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*IngestResult, error) {
	path = filepath.Clean(path)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &ErrReadFile{Path: path, Err: err}
	}
	hash := sha256.Sum256(data)
	hashStr := hex.EncodeToString(hash[:])

	existing, err := s.store.GetSnapshotBySource(ctx, path, hashStr)
	if err != nil {
		return nil, &ErrDatabase{Op: "check duplicate", Err: err}
	}
	if existing != nil {
		return &IngestResult{
			Path:       path,
			SnapshotID: existing.ID,
			Duplicate:  true,
			Settings:   existing.Settings,
		}, nil
	}

	opts := append(append([]settings.Option{}, s.opts...), settings.WithFS(s.fs), settings.WithConfigData(data))
	cfg, err := settings.Setup(filepath.Base(path), filepath.Dir(path), opts...)
	if err != nil {
		return nil, classify(path, err)
	}

	values := cfg.Snapshot()
	snap := &model.Snapshot{
		Source:   path,
		SHA256:   hashStr,
		RootName: cfg.RootName(),
		Env:      cfg.Env(),
		LoadedAt: time.Now().UTC(),
	}
	for _, key := range cfg.Keys() {
		if value, ok := values[key]; ok {
			snap.Settings = append(snap.Settings, model.Setting{Key: key, Value: value})
		}
	}

	id, err := s.store.InsertSnapshot(ctx, snap)
	if err != nil {
		return nil, &ErrDatabase{Op: "insert snapshot", Err: err}
	}

	return &IngestResult{
		Path:       path,
		SnapshotID: id,
		Settings:   snap.Settings,
	}, nil
}

// IngestFiles ingests each file in order, stopping at the first error.
// The results for the files ingested before the error are returned with it.
func (s *IngestService) IngestFiles(ctx context.Context, paths []string) ([]IngestResult, error) {
	var results []IngestResult
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := s.IngestFile(ctx, path)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// classify maps an error from settings.Setup to one of the stage errors.
func classify(path string, err error) error {
	var pe *webcfg.ParseError
	switch {
	case errors.As(err, &pe):
		return &ErrParseSyntax{Path: path, Line: pe.Pos.Line, Msg: pe.Message, Err: pe}
	case errors.Is(err, settings.ErrIllegalConfiguration):
		return &ErrIllegalConfiguration{Path: path, Err: err}
	default:
		return &ErrReadFile{Path: path, Err: fmt.Errorf("setup: %w", err)}
	}
}
