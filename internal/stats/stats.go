// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package stats

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/syncvault/engine/models"
)

const dayFormat = "2006-01-02"

type persistedState struct {
	LastFlushDate string `json:"last_flush_date"`
}

type dailyStats struct {
	mu    sync.Mutex
	flush FlushFunc
	path  string

	today              string
	totalSyncAttempts  int
	featureErrorCounts map[string]map[models.ServerErrorKind]int
}

// New constructs [DailyStats], persisting its "last flush date" at path.
// A date found at path becomes the current day, so the first event on a
// later calendar day flushes a snapshot for that date once. The counters
// themselves are held only in memory: that snapshot holds only what was
// recorded since New, and the date is written only at a rollover. flush is
// called synchronously from whichever Record*/Snapshot call first crosses a
// day boundary.
func New(flush FlushFunc, path string) (DailyStats, error) {
	d := &dailyStats{
		flush:              flush,
		path:               path,
		today:              time.Now().Format(dayFormat),
		featureErrorCounts: make(map[string]map[models.ServerErrorKind]int),
	}

	state, err := readPersistedState(path)
	if err != nil {
		return nil, models.NewSyncError(models.CodeFailedToRead, "read daily stats state", err)
	}
	if state != nil {
		d.today = state.LastFlushDate
	}

	return d, nil
}

func readPersistedState(path string) (*persistedState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (d *dailyStats) persist(date string) error {
	payload, err := json.Marshal(persistedState{LastFlushDate: date})
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, payload, 0o600)
}

// rollover flushes and resets the previous day's counters if the wall
// clock has crossed into a new calendar day since the last recorded
// event. Must be called under d.mu.
func (d *dailyStats) rollover() {
	now := time.Now().Format(dayFormat)
	if now == d.today {
		return
	}

	snapshot := d.snapshotLocked(d.today)
	previous := d.today
	d.today = now
	d.totalSyncAttempts = 0
	d.featureErrorCounts = make(map[string]map[models.ServerErrorKind]int)

	if d.flush != nil {
		d.flush(previous, snapshot)
	}
	_ = d.persist(now)
}

func (d *dailyStats) RecordSyncAttempt() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rollover()
	d.totalSyncAttempts++
}

func (d *dailyStats) RecordServerError(feature string, status int) {
	kind, ok := models.ServerErrorKindForStatus(status)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.rollover()

	byKind, ok := d.featureErrorCounts[feature]
	if !ok {
		byKind = make(map[models.ServerErrorKind]int)
		d.featureErrorCounts[feature] = byKind
	}
	byKind[kind]++
}

func (d *dailyStats) Snapshot() models.DailyStatsSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rollover()
	return d.snapshotLocked(d.today)
}

func (d *dailyStats) snapshotLocked(date string) models.DailyStatsSnapshot {
	counts := make(map[string]map[models.ServerErrorKind]int, len(d.featureErrorCounts))
	for feature, byKind := range d.featureErrorCounts {
		copied := make(map[models.ServerErrorKind]int, len(byKind))
		for kind, n := range byKind {
			copied[kind] = n
		}
		counts[feature] = copied
	}

	return models.DailyStatsSnapshot{
		Date:               date,
		TotalSyncAttempts:  d.totalSyncAttempts,
		FeatureErrorCounts: counts,
	}
}
