// Package store persists collected critical events for downstream
// analysis: dated CSV snapshots plus a SQLite archive.
package store

import (
	"context"

	"github.com/hoopsight/clutch/internal/domain/model"
)

// criticalColumns is the snapshot column order; one row per CriticalEvent.
var criticalColumns = []string{
	"gameId",
	"gameDate",
	"matchup",
	"period",
	"clock",
	"timeRemainingSeconds",
	"homeScore",
	"awayScore",
	"scoreDiff",
	"actionNumber",
	"teamTricode",
	"actionType",
	"subType",
	"shotType",
	"shotResult",
	"description",
}

// Writer persists the aggregate output of a collection run.
type Writer interface {
	// WriteCritical writes one snapshot of critical events and returns
	// its destination. Returns ErrNothingToPersist on an empty run.
	WriteCritical(ctx context.Context, runID string, events []model.CriticalEvent) (string, error)
}
