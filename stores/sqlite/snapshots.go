// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mdhender/webcfg/model"
)

// InsertSnapshot stores the snapshot and its settings in a single transaction.
// A missing UUID or LoadedAt is filled in. Returns the new snapshot id,
// which is also written back to snap.ID.
func (s *SQLiteStore) InsertSnapshot(ctx context.Context, snap *model.Snapshot) (int64, error) {
	if snap == nil {
		return 0, fmt.Errorf("insert snapshot: nil snapshot")
	}
	if snap.UUID == "" {
		snap.UUID = uuid.NewString()
	}
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (uuid, source, sha256, root_name, env, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		snap.UUID, snap.Source, snap.SHA256, snap.RootName, snap.Env,
		snap.LoadedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_settings (snapshot_id, seq, key, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare setting insert: %w", err)
	}
	defer stmt.Close()
	for i, setting := range snap.Settings {
		if _, err := stmt.ExecContext(ctx, id, i+1, setting.Key, setting.Value); err != nil {
			return 0, fmt.Errorf("insert setting %q: %w", setting.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	snap.ID = id
	return id, nil
}

// GetSnapshot returns the snapshot with its settings, or nil if there is no such snapshot.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id int64) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, uuid, source, sha256, root_name, env, loaded_at
		FROM snapshots WHERE id = ?`, id)
	return s.loadSnapshot(ctx, row)
}

// GetSnapshotBySHA256 returns the oldest snapshot loaded from content with
// the given digest, or nil if none was.
func (s *SQLiteStore) GetSnapshotBySHA256(ctx context.Context, sha256 string) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, uuid, source, sha256, root_name, env, loaded_at
		FROM snapshots WHERE sha256 = ?
		ORDER BY id LIMIT 1`, sha256)
	return s.loadSnapshot(ctx, row)
}

// GetSnapshotBySource returns the oldest snapshot loaded from source with
// the given digest, or nil if none was.
func (s *SQLiteStore) GetSnapshotBySource(ctx context.Context, source, sha256 string) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, uuid, source, sha256, root_name, env, loaded_at
		FROM snapshots WHERE source = ? AND sha256 = ?
		ORDER BY id LIMIT 1`, source, sha256)
	return s.loadSnapshot(ctx, row)
}

func (s *SQLiteStore) loadSnapshot(ctx context.Context, row *sql.Row) (*model.Snapshot, error) {
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM snapshot_settings
		WHERE snapshot_id = ? ORDER BY seq`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var setting model.Setting
		if err := rows.Scan(&setting.Key, &setting.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		snap.Settings = append(snap.Settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns all snapshots, oldest first, without their settings.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]model.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, uuid, source, sha256, root_name, env, loaded_at
		FROM snapshots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []model.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// LookupSetting returns the value of key from the newest snapshot that has it,
// along with that snapshot's id. Returns nil if no snapshot has the key.
func (s *SQLiteStore) LookupSetting(ctx context.Context, key string) (*model.Setting, int64, error) {
	var setting model.Setting
	var snapshotID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT snapshot_id, key, value FROM snapshot_settings
		WHERE key = ?
		ORDER BY snapshot_id DESC LIMIT 1`, key).Scan(&snapshotID, &setting.Key, &setting.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	} else if err != nil {
		return nil, 0, fmt.Errorf("lookup setting %q: %w", key, err)
	}
	return &setting, snapshotID, nil
}

// Stats returns counts of stored snapshots and settings.
func (s *SQLiteStore) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&stats.Snapshots); err != nil {
		return stats, fmt.Errorf("count snapshots: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshot_settings").Scan(&stats.Settings); err != nil {
		return stats, fmt.Errorf("count settings: %w", err)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*model.Snapshot, error) {
	var snap model.Snapshot
	var loadedAt string
	if err := row.Scan(&snap.ID, &snap.UUID, &snap.Source, &snap.SHA256, &snap.RootName, &snap.Env, &loadedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, loadedAt)
	if err != nil {
		return nil, fmt.Errorf("parse loaded_at %q: %w", loadedAt, err)
	}
	snap.LoadedAt = t
	return &snap, nil
}

var _ model.Store = (*SQLiteStore)(nil)
