// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package scheduler implements the Scheduler (spec.md §4.10): the three
// event sources (dataChanged, appLifecycle, immediate) that coalesce into
// one start_sync signal for the Facade to forward to the SyncQueue.
package scheduler

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/scheduler_mock.go -package=mock

// Config holds the two windows spec.md §4.10 names.
type Config struct {
	// DataChangedDebounce is W1: a dataChanged event fires start_sync only
	// after this much quiet time since the last one.
	DataChangedDebounce time.Duration
	// AppLifecycleThrottle is W2: an appLifecycle event is dropped if one
	// already fired within this window.
	AppLifecycleThrottle time.Duration
}

// Scheduler is the Scheduler contract.
type Scheduler interface {
	// NotifyDataChanged registers one dataChanged event. A start_sync
	// signal fires after DataChangedDebounce of quiet time; further calls
	// before that window elapses reset the timer rather than queuing
	// additional signals.
	NotifyDataChanged()

	// NotifyAppLifecycle registers one appLifecycle event (e.g. app
	// foregrounded). Fires start_sync immediately unless one already fired
	// within AppLifecycleThrottle, in which case the event is dropped.
	NotifyAppLifecycle()

	// NotifyImmediate fires start_sync with no delay or throttling, used
	// by signup/login and external background triggers.
	NotifyImmediate()

	// StartSync publishes one signal per coalesced trigger from any source.
	StartSync() <-chan struct{}

	// CancelAndSuspend stops any pending debounce/throttle timers and
	// silences every source until Resume is called; already-published
	// signals on StartSync are unaffected.
	CancelAndSuspend()

	// Resume re-enables sources silenced by CancelAndSuspend.
	Resume()

	// IsEnabled reports whether sources are currently enabled: it is false
	// after CancelAndSuspend or Close, and true again after Resume.
	IsEnabled() bool

	// Close stops the scheduler's background timers for good.
	Close()
}
