// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import "context"

// Store is an interface for persisting settings snapshots.
type Store interface {
	InsertSnapshot(ctx context.Context, snap *Snapshot) (int64, error)
	GetSnapshot(ctx context.Context, id int64) (*Snapshot, error)
	GetSnapshotBySHA256(ctx context.Context, sha256 string) (*Snapshot, error)
	GetSnapshotBySource(ctx context.Context, source, sha256 string) (*Snapshot, error)
	ListSnapshots(ctx context.Context) ([]Snapshot, error)
	LookupSetting(ctx context.Context, key string) (*Setting, int64, error)
	Stats(ctx context.Context) (Stats, error)
}

// Stats holds store statistics.
type Stats struct {
	Snapshots int
	Settings  int
}
