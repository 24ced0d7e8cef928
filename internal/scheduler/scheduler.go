// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import (
	"sync"
	"time"
)

const (
	defaultDataChangedDebounce  = 1 * time.Second
	defaultAppLifecycleThrottle = 600 * time.Second
)

type scheduler struct {
	cfg Config

	mu            sync.Mutex
	enabled       bool
	closed        bool
	debounceTimer *time.Timer
	lastLifecycle time.Time

	// trigger is the capacity-1 coalescing signal buffer, the same shape
	// the SyncQueue uses for its own pending-cycle channel: any number of
	// dataChanged/appLifecycle/immediate events collapse into one pending
	// start_sync.
	trigger chan struct{}
}

// New constructs a [Scheduler]. Zero-value windows in cfg default to
// DataChangedDebounce=1s, AppLifecycleThrottle=600s, per spec.md §4.10's
// example values. The scheduler starts enabled.
func New(cfg Config) Scheduler {
	if cfg.DataChangedDebounce <= 0 {
		cfg.DataChangedDebounce = defaultDataChangedDebounce
	}
	if cfg.AppLifecycleThrottle <= 0 {
		cfg.AppLifecycleThrottle = defaultAppLifecycleThrottle
	}

	return &scheduler{
		cfg:     cfg,
		enabled: true,
		trigger: make(chan struct{}, 1),
	}
}

func (s *scheduler) NotifyDataChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.closed {
		return
	}

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.cfg.DataChangedDebounce, s.fire)
}

func (s *scheduler) NotifyAppLifecycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.closed {
		return
	}

	now := time.Now()
	if !s.lastLifecycle.IsZero() && now.Sub(s.lastLifecycle) < s.cfg.AppLifecycleThrottle {
		return
	}
	s.lastLifecycle = now
	s.publish()
}

func (s *scheduler) NotifyImmediate() {
	s.mu.Lock()
	enabled := s.enabled && !s.closed
	s.mu.Unlock()
	if !enabled {
		return
	}
	s.publish()
}

// fire runs on the debounce timer's own goroutine; it must not hold s.mu
// across the publish (publish only touches the buffered channel), but it
// does need to check enabled/closed under the lock first since Close may
// race with a pending timer.
func (s *scheduler) fire() {
	s.mu.Lock()
	enabled := s.enabled && !s.closed
	s.mu.Unlock()
	if !enabled {
		return
	}
	s.publish()
}

func (s *scheduler) publish() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *scheduler) StartSync() <-chan struct{} {
	return s.trigger
}

func (s *scheduler) CancelAndSuspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}

func (s *scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.enabled = true
	s.lastLifecycle = time.Time{}
}

func (s *scheduler) IsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && !s.closed
}

func (s *scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.enabled = false
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}
