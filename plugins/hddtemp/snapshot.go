package hddtemp

import (
	"context"
	"fmt"

	"github.com/joshp123/gohome-hddtemp/internal/blob"
)

const latestSnapshot = "latest.txt"

// SnapshotArchiver stores raw daemon responses in a blob store.
type SnapshotArchiver struct {
	store blob.Store
}

func NewSnapshotArchiver(store blob.Store) *SnapshotArchiver {
	return &SnapshotArchiver{store: store}
}

func (a *SnapshotArchiver) Name() string {
	return "snapshots"
}

func (a *SnapshotArchiver) Publish(ctx context.Context, snap Snapshot) error {
	data := []byte(snap.Raw)
	name := fmt.Sprintf("%d.txt", snap.At.Unix())
	if err := a.store.Save(ctx, name, data, "text/plain"); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := a.store.Save(ctx, latestSnapshot, data, "text/plain"); err != nil {
		return fmt.Errorf("save %s: %w", latestSnapshot, err)
	}
	return nil
}

// Latest returns the most recently archived raw response.
func (a *SnapshotArchiver) Latest(ctx context.Context) (string, error) {
	data, err := a.store.Load(ctx, latestSnapshot)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
