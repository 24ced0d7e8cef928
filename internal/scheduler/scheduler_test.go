// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifyImmediate_FiresWithoutDelay(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	s.NotifyImmediate()

	select {
	case <-s.StartSync():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected an immediate start_sync signal")
	}
}

func TestNotifyDataChanged_CoalescesWithinDebounceWindow(t *testing.T) {
	s := New(Config{DataChangedDebounce: 30 * time.Millisecond})
	defer s.Close()

	for i := 0; i < 5; i++ {
		s.NotifyDataChanged()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-s.StartSync():
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected exactly one coalesced start_sync signal")
	}

	select {
	case <-s.StartSync():
		t.Fatal("expected no second signal from the coalesced burst")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyAppLifecycle_ThrottlesRepeatedEvents(t *testing.T) {
	s := New(Config{AppLifecycleThrottle: 50 * time.Millisecond})
	defer s.Close()

	s.NotifyAppLifecycle()
	select {
	case <-s.StartSync():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected first appLifecycle event to fire")
	}

	s.NotifyAppLifecycle()
	select {
	case <-s.StartSync():
		t.Fatal("expected second event within the throttle window to be dropped")
	case <-time.After(20 * time.Millisecond):
	}

	time.Sleep(60 * time.Millisecond)
	s.NotifyAppLifecycle()
	select {
	case <-s.StartSync():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected appLifecycle event after the throttle window to fire")
	}
}

func TestCancelAndSuspend_SilencesAllSources(t *testing.T) {
	s := New(Config{DataChangedDebounce: 10 * time.Millisecond})
	defer s.Close()

	s.CancelAndSuspend()
	assert.False(t, s.IsEnabled())

	s.NotifyDataChanged()
	s.NotifyAppLifecycle()
	s.NotifyImmediate()

	select {
	case <-s.StartSync():
		t.Fatal("expected no signals while suspended")
	case <-time.After(50 * time.Millisecond):
	}

	s.Resume()
	assert.True(t, s.IsEnabled())

	s.NotifyImmediate()
	select {
	case <-s.StartSync():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected signals to resume after Resume")
	}
}

func TestClose_StopsPendingDebounceTimer(t *testing.T) {
	s := New(Config{DataChangedDebounce: 20 * time.Millisecond})
	s.NotifyDataChanged()
	s.Close()

	select {
	case <-s.StartSync():
		t.Fatal("expected Close to prevent a pending debounce timer from firing")
	case <-time.After(60 * time.Millisecond):
	}
}
